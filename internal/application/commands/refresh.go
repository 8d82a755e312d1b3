package commands

import (
	"context"
	"fmt"
	"time"

	"ramws/internal/application"
	"ramws/internal/domain"
)

// RefreshResult contains the result of a refresh
type RefreshResult struct {
	Paths   []string
	Message string
}

// RefreshCommand pulls origin state into the workspace, overwriting it
type RefreshCommand struct {
	ws       *application.Workspace
	Mappings []domain.SourceMapping
}

// NewRefreshCommand creates a new RefreshCommand
func NewRefreshCommand(ws *application.Workspace, mappings []domain.SourceMapping) *RefreshCommand {
	return &RefreshCommand{
		ws:       ws,
		Mappings: mappings,
	}
}

// Validate checks every mapping stays inside both roots
func (c *RefreshCommand) Validate() error {
	return c.ws.ValidateMappings(c.Mappings)
}

// Execute mirrors each mapping origin->workspace in order. The first failure
// aborts the remaining mappings; completed ones stay refreshed.
func (c *RefreshCommand) Execute(ctx context.Context) (*RefreshResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	var done []string
	for _, m := range c.Mappings {
		src := c.ws.OriginPath(m.Path)
		dest := c.ws.WorkspacePath(m.Path)
		if _, err := c.ws.Syncer().Mirror(ctx, src, dest, domain.OriginToWorkspace, c.ws.MirrorOptions(m)); err != nil {
			err = fmt.Errorf("failed to refresh %s: %w", m.Path, err)
			c.ws.RecordRun(ctx, domain.OriginToWorkspace, c.Mappings, started, err)
			return nil, err
		}
		done = append(done, m.Path)
		c.ws.Logger().Debug("refreshed", "path", m.Path)
	}
	c.ws.RecordRun(ctx, domain.OriginToWorkspace, c.Mappings, started, nil)

	return &RefreshResult{
		Paths:   done,
		Message: fmt.Sprintf("Refreshed %d paths from %s", len(done), c.ws.Config().ProjectRoot),
	}, nil
}
