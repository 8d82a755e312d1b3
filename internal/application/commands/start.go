package commands

import (
	"context"
	"fmt"

	"ramws/internal/application"
)

// StartResult contains the result of provisioning
type StartResult struct {
	WorkspaceRoot string
	Message       string
}

// StartCommand provisions the workspace and populates it from disk
type StartCommand struct {
	ws          *application.Workspace
	SourcesOnly bool
}

// NewStartCommand creates a new StartCommand
func NewStartCommand(ws *application.Workspace, sourcesOnly bool) *StartCommand {
	return &StartCommand{ws: ws, SourcesOnly: sourcesOnly}
}

// Validate checks the configured sources
func (c *StartCommand) Validate() error {
	return c.ws.ValidateMappings(c.ws.Config().Sources)
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context) (*StartResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.ws.Ensure(ctx, c.SourcesOnly); err != nil {
		return nil, err
	}
	return &StartResult{
		WorkspaceRoot: c.ws.Root(),
		Message:       fmt.Sprintf("workspace ready at %s", c.ws.Root()),
	}, nil
}
