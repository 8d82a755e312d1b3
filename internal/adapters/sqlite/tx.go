package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"ramws/internal/domain"
)

// journalTx groups the writes of a single run
type journalTx struct {
	tx *sql.Tx
}

func (j *Journal) begin(ctx context.Context) (*journalTx, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &journalTx{tx: tx}, nil
}

// InsertRun inserts the run row and returns its ID
func (t *journalTx) InsertRun(run domain.SyncRun) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO runs (direction, started_at, finished_at, error)
		VALUES (?, ?, ?, ?)
	`, run.Direction.String(), run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(), run.Err)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertPath adds one mapping path to a run
func (t *journalTx) InsertPath(runID int64, position int, path string) error {
	_, err := t.tx.Exec(`
		INSERT INTO run_paths (run_id, position, path)
		VALUES (?, ?, ?)
	`, runID, position, path)
	return err
}

// Commit commits the transaction
func (t *journalTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction; it is a no-op after Commit
func (t *journalTx) Rollback() error {
	return t.tx.Rollback()
}
