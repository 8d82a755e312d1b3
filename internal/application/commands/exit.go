package commands

import (
	"context"
	"fmt"

	"ramws/internal/application"
	"ramws/internal/domain"
	"ramws/internal/ports"
)

// ExitResult contains the outcome of the exit policy
type ExitResult struct {
	Synced  bool
	Pending domain.DiffSummary
	Message string
}

// ExitCommand applies the configured on_exit policy when a session ends
type ExitCommand struct {
	ws             *application.Workspace
	confirmer      ports.Confirmer
	Noninteractive bool
}

// NewExitCommand creates a new ExitCommand
func NewExitCommand(ws *application.Workspace, confirmer ports.Confirmer, noninteractive bool) *ExitCommand {
	return &ExitCommand{
		ws:             ws,
		confirmer:      confirmer,
		Noninteractive: noninteractive,
	}
}

// Validate checks the sources before any syncback can run
func (c *ExitCommand) Validate() error {
	return c.ws.ValidateMappings(c.ws.Config().Sources)
}

// Execute runs the policy: never does nothing, auto syncs back without
// asking, ask syncs back only when changes are pending and confirmed.
func (c *ExitCommand) Execute(ctx context.Context) (*ExitResult, error) {
	sources := c.ws.Config().Sources

	switch c.ws.Config().Sync.OnExit {
	case domain.OnExitNever:
		return &ExitResult{Message: "Leaving workspace without syncing"}, nil

	case domain.OnExitAuto:
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, err := NewSyncbackCommand(c.ws, sources, true).Execute(ctx); err != nil {
			return nil, err
		}
		return &ExitResult{Synced: true, Message: "Synced changes back to disk"}, nil
	}

	pending := PendingChanges(ctx, c.ws, sources)
	if pending.IsZero() {
		return &ExitResult{Message: "No changes to sync"}, nil
	}

	ok, err := ConfirmDestructive(c.confirmer, "Sync changes back to disk?", c.Noninteractive)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm syncback: %w", err)
	}
	if !ok {
		return &ExitResult{Pending: pending, Message: "Changes left in workspace"}, nil
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, err := NewSyncbackCommand(c.ws, sources, c.Noninteractive).Execute(ctx); err != nil {
		return nil, err
	}
	return &ExitResult{Synced: true, Pending: pending, Message: "Synced changes back to disk"}, nil
}
