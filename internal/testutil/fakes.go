// Package testutil provides in-process stand-ins for the ports, shared by
// tests across packages.
//
// [TreeSyncer] mirrors directories with plain file copies and produces
// rsync-style itemization, so sync behaviour can be tested without rsync.
// [FixedConfirmer] answers every question the same way. [StaticInspector]
// returns canned filesystem stats. [MemoryJournal] keeps runs in a slice.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"ramws/internal/domain"
)

// MirrorCall is one recorded TreeSyncer.Mirror invocation
type MirrorCall struct {
	Source    string
	Dest      string
	Direction domain.Direction
	Opts      domain.MirrorOptions
}

// TreeSyncer implements ports.PathSyncer by walking both trees.
//
// Exclude patterns understand three shapes: "dir/**" (everything below dir),
// "/name/" (the anchored directory and its contents) and plain globs matched
// against the base name. Include patterns are ignored.
type TreeSyncer struct {
	mu    sync.Mutex
	Calls []MirrorCall

	// FailOn, when set, is consulted before every call; a non-nil return
	// aborts the call with that error.
	FailOn func(call MirrorCall) error
}

// Mirror records the call and then mirrors source onto dest
func (s *TreeSyncer) Mirror(
	_ context.Context,
	source, dest string,
	direction domain.Direction,
	opts domain.MirrorOptions,
) (*domain.ItemizedChanges, error) {
	call := MirrorCall{Source: source, Dest: dest, Direction: direction, Opts: opts}
	s.mu.Lock()
	s.Calls = append(s.Calls, call)
	s.mu.Unlock()

	if s.FailOn != nil {
		if err := s.FailOn(call); err != nil {
			return nil, err
		}
	}

	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		if err == nil {
			err = errors.New("not a directory")
		}
		return nil, &domain.FilesystemError{Op: "stat source", Path: source, Err: err}
	}
	if !opts.DryRun {
		if err := os.MkdirAll(dest, 0755); err != nil {
			return nil, &domain.FilesystemError{Op: "create destination", Path: dest, Err: err}
		}
	}

	var lines []string
	seen := map[string]bool{}
	err := filepath.WalkDir(source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(source, p)
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		seen[rel] = true
		target := filepath.Join(dest, filepath.FromSlash(rel))

		if d.IsDir() {
			if !opts.DryRun {
				return os.MkdirAll(target, 0755)
			}
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		existing, readErr := os.ReadFile(target)
		switch {
		case readErr != nil:
			lines = append(lines, ">f+++++++++ "+rel)
		case !bytes.Equal(existing, content):
			lines = append(lines, ">fcs....... "+rel)
		default:
			return nil
		}
		if opts.DryRun {
			return nil
		}
		return os.WriteFile(target, content, 0644)
	})
	if err != nil {
		return nil, &domain.MirrorError{Source: source, Dest: dest, Diagnostic: err.Error(), Err: err}
	}

	if opts.Delete {
		var stale []string
		_ = filepath.WalkDir(dest, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			rel, _ := filepath.Rel(dest, p)
			if rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if excluded(rel, opts.Exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !seen[rel] {
				stale = append(stale, rel)
				if d.IsDir() {
					return filepath.SkipDir
				}
			}
			return nil
		})
		sort.Strings(stale)
		for _, rel := range stale {
			lines = append(lines, "*deleting   "+rel)
			if !opts.DryRun {
				if err := os.RemoveAll(filepath.Join(dest, filepath.FromSlash(rel))); err != nil {
					return nil, &domain.MirrorError{Source: source, Dest: dest, Diagnostic: err.Error(), Err: err}
				}
			}
		}
	}

	changes := &domain.ItemizedChanges{}
	if opts.Itemize {
		changes.Lines = lines
	}
	return changes, nil
}

// CallCount returns the number of Mirror invocations so far
func (s *TreeSyncer) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		switch {
		case strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/"):
			dir := strings.Trim(p, "/")
			if rel == dir || strings.HasPrefix(rel, dir+"/") {
				return true
			}
		case strings.HasSuffix(p, "/**"):
			dir := strings.TrimSuffix(p, "/**")
			if strings.HasPrefix(rel, dir+"/") {
				return true
			}
		default:
			if ok, _ := path.Match(p, path.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

// ItemizingSyncer returns fixed itemization lines for every call
type ItemizingSyncer struct {
	Lines []string
	Err   error
	Calls int
}

// Mirror returns the configured lines or error
func (s *ItemizingSyncer) Mirror(
	_ context.Context,
	_, _ string,
	_ domain.Direction,
	_ domain.MirrorOptions,
) (*domain.ItemizedChanges, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return &domain.ItemizedChanges{Lines: append([]string(nil), s.Lines...)}, nil
}

// FixedConfirmer answers every question with Answer and records the questions
type FixedConfirmer struct {
	Answer    bool
	Err       error
	Questions []string
}

// Confirm implements ports.Confirmer
func (c *FixedConfirmer) Confirm(question string, _ bool) (bool, error) {
	c.Questions = append(c.Questions, question)
	if c.Err != nil {
		return false, c.Err
	}
	return c.Answer, nil
}

// StaticInspector returns Stats, or Err when set
type StaticInspector struct {
	Stats domain.FSStats
	Err   error
}

// Stat implements ports.FilesystemInspector
func (i *StaticInspector) Stat(path string) (*domain.FSStats, error) {
	if i.Err != nil {
		return nil, &domain.CapacityError{Path: path, Err: i.Err}
	}
	stats := i.Stats
	return &stats, nil
}

// MemoryJournal implements ports.SyncJournal in memory
type MemoryJournal struct {
	mu     sync.Mutex
	Runs   []domain.SyncRun
	Err    error
	Closed bool
	lastID int64
}

// Record appends a run
func (j *MemoryJournal) Record(_ context.Context, run domain.SyncRun) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Err != nil {
		return 0, j.Err
	}
	j.lastID++
	run.ID = j.lastID
	j.Runs = append(j.Runs, run)
	return run.ID, nil
}

// Recent returns up to limit runs, newest first
func (j *MemoryJournal) Recent(_ context.Context, limit int) ([]domain.SyncRun, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []domain.SyncRun
	for i := len(j.Runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.Runs[i])
	}
	return out, nil
}

// Last returns the newest run
func (j *MemoryJournal) Last(ctx context.Context) (*domain.SyncRun, error) {
	runs, err := j.Recent(ctx, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

// Prune drops all but the newest keep runs
func (j *MemoryJournal) Prune(_ context.Context, keep int) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Err != nil {
		return 0, j.Err
	}
	if len(j.Runs) <= keep {
		return 0, nil
	}
	removed := len(j.Runs) - keep
	j.Runs = append([]domain.SyncRun(nil), j.Runs[removed:]...)
	return int64(removed), nil
}

// Close marks the journal closed
func (j *MemoryJournal) Close() error {
	j.Closed = true
	return nil
}
