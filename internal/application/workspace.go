package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ramws/internal/config"
	"ramws/internal/domain"
	"ramws/internal/logging"
	"ramws/internal/ports"
)

// StagingDirName is the syncback staging tree, created under the project root
const StagingDirName = ".ramws-staging"

// DefaultRunRetention is how many journal runs are kept after each record
const DefaultRunRetention = 200

// Workspace owns the lifecycle of one ephemeral workspace root and the
// collaborators every sync operation needs.
type Workspace struct {
	cfg       *config.Resolved
	syncer    ports.PathSyncer
	differ    *Differ
	inspector ports.FilesystemInspector
	journal   ports.SyncJournal
	retention int
	logger    *slog.Logger
}

// Option configures a Workspace
type Option func(*Workspace)

// WithInspector sets the filesystem metadata source
func WithInspector(inspector ports.FilesystemInspector) Option {
	return func(w *Workspace) {
		w.inspector = inspector
	}
}

// WithJournal records refresh and syncback runs
func WithJournal(journal ports.SyncJournal) Option {
	return func(w *Workspace) {
		w.journal = journal
	}
}

// WithRunRetention bounds the journal to the newest n runs; n <= 0 keeps all
func WithRunRetention(n int) Option {
	return func(w *Workspace) {
		w.retention = n
	}
}

// WithLogger sets the diagnostics sink
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// NewWorkspace creates a Workspace for a resolved configuration
func NewWorkspace(cfg *config.Resolved, syncer ports.PathSyncer, opts ...Option) *Workspace {
	w := &Workspace{
		cfg:       cfg,
		syncer:    syncer,
		differ:    NewDiffer(syncer),
		retention: DefaultRunRetention,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Config returns the resolved configuration
func (w *Workspace) Config() *config.Resolved { return w.cfg }

// Syncer returns the mirroring primitive
func (w *Workspace) Syncer() ports.PathSyncer { return w.syncer }

// Inspector returns the filesystem inspector, which may be nil
func (w *Workspace) Inspector() ports.FilesystemInspector { return w.inspector }

// Journal returns the sync journal, which may be nil
func (w *Workspace) Journal() ports.SyncJournal { return w.journal }

// Logger returns the diagnostics sink
func (w *Workspace) Logger() *slog.Logger { return w.logger }

// Root returns the workspace root
func (w *Workspace) Root() string { return w.cfg.WorkspaceRoot }

// WorkspacePath joins rel onto the workspace root
func (w *Workspace) WorkspacePath(rel string) string {
	return filepath.Join(w.cfg.WorkspaceRoot, rel)
}

// OriginPath joins rel onto the project root
func (w *Workspace) OriginPath(rel string) string {
	return filepath.Join(w.cfg.ProjectRoot, rel)
}

// StagingRoot returns the syncback staging directory
func (w *Workspace) StagingRoot() string {
	return filepath.Join(w.cfg.ProjectRoot, StagingDirName)
}

// Exists reports whether the workspace root is present
func (w *Workspace) Exists() bool {
	_, err := os.Stat(w.cfg.WorkspaceRoot)
	return err == nil
}

// ValidateMappings checks every mapping against both roots before anything
// is mirrored. The first escape is returned.
func (w *Workspace) ValidateMappings(mappings []domain.SourceMapping) error {
	for _, m := range mappings {
		if err := ValidateRelative(w.cfg.ProjectRoot, m.Path); err != nil {
			return fmt.Errorf("mapping %s: %w", m.Path, err)
		}
		if err := ValidateRelative(w.cfg.WorkspaceRoot, m.Path); err != nil {
			return fmt.Errorf("mapping %s: %w", m.Path, err)
		}
	}
	return nil
}

// Ensure creates the workspace if needed and populates every source
// mapping from the origin. Calling it on a provisioned workspace re-syncs.
func (w *Workspace) Ensure(ctx context.Context, sourcesOnly bool) error {
	if err := w.checkRoots(); err != nil {
		return err
	}
	if err := w.ValidateMappings(w.cfg.Sources); err != nil {
		return err
	}
	for _, b := range w.cfg.BuildDirs {
		if err := ValidateRelative(w.cfg.WorkspaceRoot, b.Path); err != nil {
			return fmt.Errorf("build dir %s: %w", b.Path, err)
		}
	}

	root := w.cfg.WorkspaceRoot
	if err := os.MkdirAll(root, 0755); err != nil {
		return &domain.FilesystemError{Op: "create workspace", Path: root, Err: err}
	}
	w.warnIfNotMemoryBacked()

	for _, src := range w.cfg.Sources {
		dest := w.WorkspacePath(src.Path)
		if err := os.MkdirAll(dest, 0755); err != nil {
			return &domain.FilesystemError{Op: "create source dir", Path: dest, Err: err}
		}
		opts := w.MirrorOptions(src)
		if _, err := w.syncer.Mirror(ctx, w.OriginPath(src.Path), dest, domain.OriginToWorkspace, opts); err != nil {
			return fmt.Errorf("failed to populate %s: %w", src.Path, err)
		}
	}

	// Build dirs come last so a delete-aware source mirror cannot remove them.
	if !sourcesOnly {
		for _, b := range w.cfg.BuildDirs {
			path := w.WorkspacePath(b.Path)
			if err := os.MkdirAll(path, 0755); err != nil {
				return &domain.FilesystemError{Op: "create build dir", Path: path, Err: err}
			}
		}
	}

	w.logger.Info("workspace ready", "root", root, "sources", len(w.cfg.Sources))
	return nil
}

// Delete removes the workspace root. Anything never synced back is lost.
func (w *Workspace) Delete() error {
	if !w.Exists() {
		return nil
	}
	if err := w.checkRoots(); err != nil {
		return err
	}
	w.logger.Info("removing workspace", "root", w.cfg.WorkspaceRoot)
	if err := os.RemoveAll(w.cfg.WorkspaceRoot); err != nil {
		return &domain.FilesystemError{Op: "remove workspace", Path: w.cfg.WorkspaceRoot, Err: err}
	}
	return nil
}

// MirrorOptions builds non-dry-run options for a mapping: its filters, the
// global delete policy and anchored excludes for the staging directory and
// for every build dir nested strictly inside the mapping.
func (w *Workspace) MirrorOptions(m domain.SourceMapping) domain.MirrorOptions {
	exclude := append([]string(nil), m.Exclude...)
	if rel, ok := nestedIn(w.OriginPath(m.Path), w.StagingRoot()); ok {
		exclude = append(exclude, "/"+rel+"/")
	}
	for _, b := range w.cfg.BuildDirs {
		if rel, ok := nestedIn(w.WorkspacePath(m.Path), w.WorkspacePath(b.Path)); ok {
			exclude = append(exclude, "/"+rel+"/")
		}
	}
	return domain.MirrorOptions{
		Delete:  w.cfg.Sync.Delete,
		Include: append([]string(nil), m.Include...),
		Exclude: exclude,
	}
}

// nestedIn returns target relative to base when target lies strictly below it
func nestedIn(base, target string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Workspace) checkRoots() error {
	if err := config.CheckRootsDisjoint(w.cfg.ProjectRoot, w.cfg.WorkspaceRoot); err != nil {
		return &domain.ConfigError{Path: w.cfg.ConfigPath, Err: err}
	}
	return nil
}

// Diff measures pending workspace->origin changes for one mapping
func (w *Workspace) Diff(ctx context.Context, m domain.SourceMapping) (domain.DiffSummary, error) {
	return w.differ.Diff(ctx, w.WorkspacePath(m.Path), w.OriginPath(m.Path), w.MirrorOptions(m))
}

// Capacity queries the workspace filesystem
func (w *Workspace) Capacity() (*domain.Capacity, error) {
	if w.inspector == nil {
		return nil, &domain.CapacityError{Path: w.cfg.WorkspaceRoot, Err: errors.New("no filesystem inspector configured")}
	}
	stats, err := w.inspector.Stat(w.cfg.WorkspaceRoot)
	if err != nil {
		return nil, err
	}
	return domain.NewCapacity(*stats), nil
}

// RecordRun stores a finished run in the journal. Journal failures are
// logged and never fail the sync itself.
func (w *Workspace) RecordRun(ctx context.Context, direction domain.Direction, mappings []domain.SourceMapping, started time.Time, runErr error) {
	if w.journal == nil {
		return
	}
	run := domain.SyncRun{
		Direction:  direction,
		Paths:      mappingPaths(mappings),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if runErr != nil {
		run.Err = runErr.Error()
	}
	if _, err := w.journal.Record(ctx, run); err != nil {
		w.logger.Warn("failed to record sync run", "direction", direction.String(), "error", err)
		return
	}
	if w.retention <= 0 {
		return
	}
	if removed, err := w.journal.Prune(ctx, w.retention); err != nil {
		w.logger.Warn("failed to prune sync journal", "error", err)
	} else if removed > 0 {
		w.logger.Debug("pruned sync journal", "removed", removed, "kept", w.retention)
	}
}

func (w *Workspace) warnIfNotMemoryBacked() {
	if w.inspector == nil {
		return
	}
	stats, err := w.inspector.Stat(w.cfg.WorkspaceRoot)
	if err != nil {
		w.logger.Debug("could not determine workspace filesystem", "root", w.cfg.WorkspaceRoot, "error", err)
		return
	}
	if !stats.IsMemoryBacked() {
		w.logger.Warn("workspace is not on tmpfs; performance may be lower",
			"root", w.cfg.WorkspaceRoot,
			"fs_type", stats.TypeName(),
		)
	}
}

func mappingPaths(mappings []domain.SourceMapping) []string {
	paths := make([]string, 0, len(mappings))
	for _, m := range mappings {
		paths = append(paths, m.Path)
	}
	return paths
}
