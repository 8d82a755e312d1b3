package commands

import (
	"context"
	"fmt"

	"ramws/internal/application"
	"ramws/internal/domain"
)

// DefaultHistoryLimit is the number of runs listed when none is requested
const DefaultHistoryLimit = 10

// HistoryResult contains recent sync runs, newest first
type HistoryResult struct {
	Runs    []domain.SyncRun
	Message string
}

// HistoryCommand lists recorded refresh and syncback runs
type HistoryCommand struct {
	ws    *application.Workspace
	Limit int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(ws *application.Workspace, limit int) *HistoryCommand {
	return &HistoryCommand{ws: ws, Limit: limit}
}

// Validate checks the limit and that a journal is configured
func (c *HistoryCommand) Validate() error {
	if c.Limit <= 0 {
		return &application.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("must be positive, got %d", c.Limit),
		}
	}
	if c.ws.Journal() == nil {
		return &application.ValidationError{
			Field:   "journal",
			Message: "sync journal is not available",
		}
	}
	return nil
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) (*HistoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	runs, err := c.ws.Journal().Recent(ctx, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync journal: %w", err)
	}
	return &HistoryResult{
		Runs:    runs,
		Message: fmt.Sprintf("%d runs", len(runs)),
	}, nil
}
