package domain

import "fmt"

// OnExit decides what happens to pending workspace changes when a shell exits
type OnExit string

const (
	OnExitAsk   OnExit = "ask"
	OnExitAuto  OnExit = "auto"
	OnExitNever OnExit = "never"
)

// ParseOnExit validates an on_exit value from configuration
func ParseOnExit(s string) (OnExit, error) {
	switch OnExit(s) {
	case OnExitAsk, OnExitAuto, OnExitNever:
		return OnExit(s), nil
	case "":
		return OnExitAsk, nil
	default:
		return "", fmt.Errorf("unknown on_exit policy %q (expected ask, auto, or never)", s)
	}
}

// BuildDirKind tags a workspace-only directory. It is a selector for
// `sync --role` and nothing else.
type BuildDirKind string

const (
	BuildDirScratch BuildDirKind = "scratch"
	BuildDirCache   BuildDirKind = "cache"
)

// ParseBuildDirKind validates a build dir type from configuration
func ParseBuildDirKind(s string) (BuildDirKind, error) {
	switch BuildDirKind(s) {
	case BuildDirScratch, BuildDirCache:
		return BuildDirKind(s), nil
	case "":
		return BuildDirScratch, nil
	default:
		return "", fmt.Errorf("unknown build dir type %q (expected scratch or cache)", s)
	}
}

// Role selects which categories of paths take part in an explicit sync
type Role string

const (
	RoleSource  Role = "source"
	RoleCache   Role = "cache"
	RoleScratch Role = "scratch"
)

// ParseRole validates a --role value
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSource, RoleCache, RoleScratch:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q (expected source, cache, or scratch)", s)
	}
}

// SourceMapping is a path under the project root mirrored into the workspace
type SourceMapping struct {
	Path    string   // Relative to both roots
	Include []string // Evaluated before Exclude
	Exclude []string
}

// BuildDirMapping is a path that exists only under the workspace root
type BuildDirMapping struct {
	Path string
	Kind BuildDirKind
}

// SyncPolicy controls exit behaviour and destructive mirroring
type SyncPolicy struct {
	OnExit OnExit `json:"on_exit"`
	Delete bool   `json:"delete"`
}

// GitPolicy is carried for configuration compatibility; no behaviour hangs off it yet
type GitPolicy struct {
	RequireClean    bool `json:"require_clean"`
	AutoStageSynced bool `json:"auto_stage_synced"`
}
