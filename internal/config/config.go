// Package config loads and resolves .ramws.yml.
//
// A config file is located by, in order: the --config flag, the RAMWS_CONFIG
// environment variable, and a walk from the project root towards the
// filesystem root. Resolution binds the file to a canonical project root and
// derives the workspace root from it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ramws/internal/domain"
)

// FileName is the per-project configuration file
const FileName = ".ramws.yml"

// EnvConfig overrides config discovery when set
const EnvConfig = "RAMWS_CONFIG"

// File mirrors the on-disk YAML document
type File struct {
	Workspace WorkspaceSection `yaml:"workspace"`
	Sources   []SourceSpec     `yaml:"sources"`
	BuildDirs []BuildDirSpec   `yaml:"build_dirs"`
	Sync      SyncSection      `yaml:"sync"`
	Git       GitSection       `yaml:"git"`
}

// WorkspaceSection configures where the workspace lives
type WorkspaceSection struct {
	// Root is a template; ${PROJECT} and ${USER} are expanded.
	// Default: /dev/shm/ramws-${USER}/${PROJECT}
	Root string `yaml:"root,omitempty"`
}

// SourceSpec is one mirrored path
type SourceSpec struct {
	Path    string   `yaml:"path"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// BuildDirSpec is one workspace-only directory
type BuildDirSpec struct {
	Path string `yaml:"path"`
	Type string `yaml:"type"`
}

// SyncSection configures sync policy
type SyncSection struct {
	OnExit string `yaml:"on_exit"`
	// Delete is a pointer so that an absent key keeps the default of true
	Delete *bool `yaml:"delete,omitempty"`
}

// GitSection is parsed for compatibility
type GitSection struct {
	RequireClean    bool `yaml:"require_clean"`
	AutoStageSynced bool `yaml:"auto_stage_synced"`
}

// Resolved is the configuration the core consumes
type Resolved struct {
	ConfigPath    string
	ProjectRoot   string
	WorkspaceRoot string
	Slug          string
	Sources       []domain.SourceMapping
	BuildDirs     []domain.BuildDirMapping
	Sync          domain.SyncPolicy
	Git           domain.GitPolicy
}

// DefaultSources mirrors the whole project minus VCS metadata and common build output
func DefaultSources() []SourceSpec {
	return []SourceSpec{{
		Path:    ".",
		Include: []string{},
		Exclude: []string{".git/**", "build/**", "target/**", "node_modules/**"},
	}}
}

// Default returns the document written by `ramws init`
func Default() *File {
	del := true
	return &File{
		Sources:   DefaultSources(),
		BuildDirs: []BuildDirSpec{},
		Sync:      SyncSection{OnExit: string(domain.OnExitAsk), Delete: &del},
	}
}

// Marshal renders a config document as YAML
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Parse decodes a YAML document, applying defaults for missing keys
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if f.Sources == nil {
		f.Sources = DefaultSources()
	}
	return &f, nil
}

// Load reads path and resolves it against projectRoot
func Load(path, projectRoot string) (*Resolved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: fmt.Errorf("failed to read: %w", err)}
	}
	f, err := Parse(data)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	r, err := Resolve(f, projectRoot, os.Getenv("USER"))
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	r.ConfigPath = path
	return r, nil
}

// Resolve validates f and derives roots from the canonical projectRoot
func Resolve(f *File, projectRoot, user string) (*Resolved, error) {
	canonical, err := canonicalize(projectRoot)
	if err != nil {
		return nil, err
	}

	onExit, err := domain.ParseOnExit(f.Sync.OnExit)
	if err != nil {
		return nil, err
	}
	del := true
	if f.Sync.Delete != nil {
		del = *f.Sync.Delete
	}

	sources := make([]domain.SourceMapping, 0, len(f.Sources))
	for i, s := range f.Sources {
		if s.Path == "" {
			return nil, fmt.Errorf("sources[%d]: path is required", i)
		}
		sources = append(sources, domain.SourceMapping{
			Path:    s.Path,
			Include: s.Include,
			Exclude: s.Exclude,
		})
	}

	buildDirs := make([]domain.BuildDirMapping, 0, len(f.BuildDirs))
	for i, b := range f.BuildDirs {
		if b.Path == "" {
			return nil, fmt.Errorf("build_dirs[%d]: path is required", i)
		}
		kind, err := domain.ParseBuildDirKind(b.Type)
		if err != nil {
			return nil, fmt.Errorf("build_dirs[%d]: %w", i, err)
		}
		buildDirs = append(buildDirs, domain.BuildDirMapping{Path: b.Path, Kind: kind})
	}

	slug := domain.ProjectSlug(canonical)
	template := f.Workspace.Root
	if template == "" {
		template = domain.DefaultWorkspaceTemplate
	}
	wsRoot := filepath.Clean(domain.ExpandPlaceholders(template, slug, user))
	if !filepath.IsAbs(wsRoot) {
		return nil, fmt.Errorf("workspace root %s must be absolute", wsRoot)
	}
	if err := CheckRootsDisjoint(canonical, wsRoot); err != nil {
		return nil, err
	}

	return &Resolved{
		ProjectRoot:   canonical,
		WorkspaceRoot: wsRoot,
		Slug:          slug,
		Sources:       sources,
		BuildDirs:     buildDirs,
		Sync:          domain.SyncPolicy{OnExit: onExit, Delete: del},
		Git:           domain.GitPolicy{RequireClean: f.Git.RequireClean, AutoStageSynced: f.Git.AutoStageSynced},
	}, nil
}

// FindProjectRoot returns the nearest ancestor of start holding a .git
// directory, or the canonical start directory when there is none.
func FindProjectRoot(start string) (string, error) {
	canonical, err := canonicalize(start)
	if err != nil {
		return "", err
	}
	current := canonical
	for {
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return canonical, nil
		}
		current = parent
	}
}

// Discover finds the config file for a project root
func Discover(projectRoot string) (string, error) {
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}
	current := projectRoot
	for {
		candidate := filepath.Join(current, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", &domain.ConfigError{Err: errors.New(FileName + " not found; run ramws init")}
		}
		current = parent
	}
}

// CheckRootsDisjoint fails when the workspace root equals the project root or
// either one contains the other.
func CheckRootsDisjoint(projectRoot, workspaceRoot string) error {
	project, err := CanonicalizeLenient(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to canonicalize %s: %w", projectRoot, err)
	}
	ws, err := CanonicalizeLenient(workspaceRoot)
	if err != nil {
		return fmt.Errorf("failed to canonicalize %s: %w", workspaceRoot, err)
	}
	if contains(project, ws) || contains(ws, project) {
		return fmt.Errorf("workspace root %s overlaps project root %s", ws, project)
	}
	return nil
}

func contains(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// CanonicalizeLenient resolves path like filepath.EvalSymlinks but tolerates
// missing trailing components: the longest existing prefix is resolved and
// the remainder is appended lexically.
func CanonicalizeLenient(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	existing := abs
	var rest []string
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{resolved}, rest...)...), nil
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize %s: %w", path, err)
	}
	return resolved, nil
}
