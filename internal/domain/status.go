package domain

import (
	"fmt"
	"time"
)

// TmpfsMagic is the statfs type code of a memory-backed filesystem
const TmpfsMagic = 0x01021994

// FSStats is the raw result of a filesystem metadata query
type FSStats struct {
	TypeCode  int64
	Total     uint64
	Free      uint64
	Available uint64 // Available to an unprivileged caller
}

// IsMemoryBacked reports whether the filesystem is tmpfs
func (s FSStats) IsMemoryBacked() bool {
	return s.TypeCode == TmpfsMagic
}

// TypeName returns "tmpfs" for memory-backed filesystems, the hex type code otherwise
func (s FSStats) TypeName() string {
	if s.IsMemoryBacked() {
		return "tmpfs"
	}
	return fmt.Sprintf("0x%x", s.TypeCode)
}

// Capacity is the reported view of the workspace filesystem
type Capacity struct {
	FSType    string `json:"fs_type"`
	Total     uint64 `json:"total"`
	Available uint64 `json:"available"`
	Used      uint64 `json:"used"`
}

// NewCapacity derives reported capacity from raw stats
func NewCapacity(s FSStats) *Capacity {
	used := uint64(0)
	if s.Total > s.Free {
		used = s.Total - s.Free
	}
	return &Capacity{
		FSType:    s.TypeName(),
		Total:     s.Total,
		Available: s.Available,
		Used:      used,
	}
}

// SyncRun is one recorded refresh or syncback invocation
type SyncRun struct {
	ID         int64     `json:"id"`
	Direction  Direction `json:"direction"`
	Paths      []string  `json:"paths"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Err        string    `json:"error,omitempty"`
}

// Succeeded reports whether the run completed without error
func (r SyncRun) Succeeded() bool {
	return r.Err == ""
}

// StatusSnapshot is a point-in-time, non-persisted view of the workspace
type StatusSnapshot struct {
	Exists        bool        `json:"exists"`
	WorkspaceRoot string      `json:"workspace_root"`
	ConfigPath    string      `json:"config_path"`
	Capacity      *Capacity   `json:"capacity,omitempty"`
	Diff          DiffSummary `json:"diff"`
	SyncPolicy    SyncPolicy  `json:"sync_policy"`
	LastSync      *SyncRun    `json:"last_sync,omitempty"`
}
