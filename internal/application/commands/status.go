package commands

import (
	"context"

	"ramws/internal/application"
	"ramws/internal/domain"
)

// StatusResult contains the workspace snapshot
type StatusResult struct {
	Snapshot domain.StatusSnapshot
	Message  string
}

// StatusCommand reports workspace existence, capacity and pending changes
type StatusCommand struct {
	ws *application.Workspace
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(ws *application.Workspace) *StatusCommand {
	return &StatusCommand{ws: ws}
}

// Validate is a no-op; status is always allowed
func (c *StatusCommand) Validate() error {
	return nil
}

// Execute builds the snapshot. Capacity and per-mapping diff failures
// degrade the snapshot instead of failing it.
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	cfg := c.ws.Config()
	snap := domain.StatusSnapshot{
		Exists:        c.ws.Exists(),
		WorkspaceRoot: cfg.WorkspaceRoot,
		ConfigPath:    cfg.ConfigPath,
		SyncPolicy:    cfg.Sync,
	}

	if journal := c.ws.Journal(); journal != nil {
		last, err := journal.Last(ctx)
		if err != nil {
			c.ws.Logger().Debug("failed to read last sync", "error", err)
		} else {
			snap.LastSync = last
		}
	}

	if !snap.Exists {
		return &StatusResult{Snapshot: snap, Message: "Workspace not created"}, nil
	}

	capacity, err := c.ws.Capacity()
	if err != nil {
		c.ws.Logger().Debug("capacity unavailable", "root", cfg.WorkspaceRoot, "error", err)
	} else {
		snap.Capacity = capacity
	}

	snap.Diff = PendingChanges(ctx, c.ws, cfg.Sources)

	msg := "Workspace clean"
	if !snap.Diff.IsZero() {
		msg = "Workspace has unsynced changes"
	}
	return &StatusResult{Snapshot: snap, Message: msg}, nil
}

// PendingChanges sums workspace->origin diffs over mappings. A mapping whose
// diff cannot be computed is logged and counted as zero.
func PendingChanges(ctx context.Context, ws *application.Workspace, mappings []domain.SourceMapping) domain.DiffSummary {
	var total domain.DiffSummary
	for _, m := range mappings {
		sum, err := ws.Diff(ctx, m)
		if err != nil {
			ws.Logger().Debug("diff failed", "path", m.Path, "error", err)
			continue
		}
		total = total.Add(sum)
	}
	return total
}
