package ports

import (
	"context"

	"ramws/internal/domain"
)

// SyncJournal records refresh and syncback runs for later inspection
type SyncJournal interface {
	// Record stores a finished run and returns its ID
	Record(ctx context.Context, run domain.SyncRun) (int64, error)

	// Recent returns up to limit runs, newest first
	Recent(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// Last returns the newest run, or nil when the journal is empty
	Last(ctx context.Context) (*domain.SyncRun, error)

	// Prune deletes all but the newest keep runs and returns how many were removed
	Prune(ctx context.Context, keep int) (int64, error)

	Close() error
}
