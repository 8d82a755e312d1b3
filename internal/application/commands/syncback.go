package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ramws/internal/application"
	"ramws/internal/domain"
)

// SyncbackResult contains the result of a syncback
type SyncbackResult struct {
	Paths   []string
	Message string
}

// SyncbackCommand pushes workspace state to the origin through a staging tree.
//
// All mappings are first copied into a fresh staging directory under the
// project root, and only then mirrored onto the origin. A failure while
// staging leaves the origin untouched. The second hop is a plain mirror, not
// an atomic swap, so interruption there can leave the origin partially
// updated.
type SyncbackCommand struct {
	ws             *application.Workspace
	Mappings       []domain.SourceMapping
	Noninteractive bool
}

// NewSyncbackCommand creates a new SyncbackCommand
func NewSyncbackCommand(ws *application.Workspace, mappings []domain.SourceMapping, noninteractive bool) *SyncbackCommand {
	return &SyncbackCommand{
		ws:             ws,
		Mappings:       mappings,
		Noninteractive: noninteractive,
	}
}

// Validate checks every mapping against the workspace root, the project
// root and the staging root
func (c *SyncbackCommand) Validate() error {
	if err := c.ws.ValidateMappings(c.Mappings); err != nil {
		return err
	}
	staging := c.ws.StagingRoot()
	for _, m := range c.Mappings {
		if err := application.ValidateRelative(staging, m.Path); err != nil {
			return fmt.Errorf("mapping %s: %w", m.Path, err)
		}
	}
	return nil
}

// Execute runs the staged syncback
func (c *SyncbackCommand) Execute(ctx context.Context) (*SyncbackResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	paths, err := c.run(ctx)
	c.ws.RecordRun(ctx, domain.WorkspaceToOrigin, c.Mappings, started, err)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Synced %d paths back to %s", len(paths), c.ws.Config().ProjectRoot)
	if c.Noninteractive {
		c.ws.Logger().Debug("syncback complete", "paths", len(paths))
	} else {
		c.ws.Logger().Info("syncback complete", "paths", len(paths))
	}
	return &SyncbackResult{Paths: paths, Message: msg}, nil
}

func (c *SyncbackCommand) run(ctx context.Context) ([]string, error) {
	staging := c.ws.StagingRoot()
	if err := os.RemoveAll(staging); err != nil {
		return nil, &domain.FilesystemError{Op: "clean staging", Path: staging, Err: err}
	}
	if err := os.MkdirAll(staging, 0755); err != nil {
		return nil, &domain.FilesystemError{Op: "create staging", Path: staging, Err: err}
	}

	syncer := c.ws.Syncer()

	for _, m := range c.Mappings {
		stagePath := filepath.Join(staging, m.Path)
		if err := os.MkdirAll(filepath.Dir(stagePath), 0755); err != nil {
			return nil, &domain.FilesystemError{Op: "create staging", Path: stagePath, Err: err}
		}
		opts := c.ws.MirrorOptions(m)
		opts.Delete = false
		if _, err := syncer.Mirror(ctx, c.ws.WorkspacePath(m.Path), stagePath, domain.WorkspaceToOrigin, opts); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", m.Path, err)
		}
		c.ws.Logger().Debug("staged", "path", m.Path)
	}

	var done []string
	for _, m := range c.Mappings {
		stagePath := filepath.Join(staging, m.Path)
		if _, err := syncer.Mirror(ctx, stagePath, c.ws.OriginPath(m.Path), domain.WorkspaceToOrigin, c.ws.MirrorOptions(m)); err != nil {
			return done, fmt.Errorf("failed to sync back %s: %w", m.Path, err)
		}
		done = append(done, m.Path)
		c.ws.Logger().Debug("synced back", "path", m.Path)
	}

	if err := os.RemoveAll(staging); err != nil {
		c.ws.Logger().Warn("failed to remove staging directory", "path", staging, "error", err)
	}
	return done, nil
}
