package commands

import (
	"context"
	"fmt"

	"ramws/internal/application"
	"ramws/internal/ports"
)

// DestroyResult contains the result of a destroy
type DestroyResult struct {
	Removed bool
	Message string
}

// DestroyCommand removes the workspace, asking first when it holds unsynced changes
type DestroyCommand struct {
	ws             *application.Workspace
	confirmer      ports.Confirmer
	Force          bool
	Noninteractive bool
}

// NewDestroyCommand creates a new DestroyCommand
func NewDestroyCommand(ws *application.Workspace, confirmer ports.Confirmer, force, noninteractive bool) *DestroyCommand {
	return &DestroyCommand{
		ws:             ws,
		confirmer:      confirmer,
		Force:          force,
		Noninteractive: noninteractive,
	}
}

// Validate is a no-op; the workspace root comes from resolved config
func (c *DestroyCommand) Validate() error {
	return nil
}

// Execute runs the destroy command
func (c *DestroyCommand) Execute(ctx context.Context) (*DestroyResult, error) {
	root := c.ws.Root()
	if !c.ws.Exists() {
		return &DestroyResult{Message: fmt.Sprintf("workspace not found at %s", root)}, nil
	}

	if !c.Force {
		pending := PendingChanges(ctx, c.ws, c.ws.Config().Sources)
		if !pending.IsZero() {
			ok, err := ConfirmDestructive(c.confirmer, "Unsynced changes detected. Delete workspace?", c.Noninteractive)
			if err != nil {
				return nil, fmt.Errorf("failed to confirm destroy: %w", err)
			}
			if !ok {
				return &DestroyResult{Message: "Aborted"}, nil
			}
		}
	}

	if err := c.ws.Delete(); err != nil {
		return nil, err
	}
	return &DestroyResult{Removed: true, Message: fmt.Sprintf("Removed %s", root)}, nil
}
