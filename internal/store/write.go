package store

import (
	"context"
	"fmt"

	"github.com/roach88/rpgscan/internal/report"
)

// WriteRun stores a scan run and all of its findings in one transaction.
// Findings keep their discovery order as seq, starting at 1.
//
// A run id that already exists is an error: runs are never overwritten.
func (s *Store) WriteRun(ctx context.Context, runID string, res *report.Results) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	q := res.Query()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, mode, query_id, query_name, total)
		VALUES (?, ?, ?, ?, ?)
	`, runID, q.Mode.String(), q.ID, res.Target(), res.Total())
	if err != nil {
		return fmt.Errorf("write run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings
		(run_id, seq, container_kind, container_id, owner_id, owner_name, x, y, page, line, access, active, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write run %s: prepare: %w", runID, err)
	}
	defer stmt.Close()

	for i, f := range res.All() {
		_, err = stmt.ExecContext(ctx,
			runID,
			i+1,
			f.Container.Kind.String(),
			f.Container.ID,
			f.Owner.ID,
			f.Owner.Name,
			f.Owner.X,
			f.Owner.Y,
			f.Page,
			f.Line,
			f.Access.String(),
			f.Active,
			f.Description,
		)
		if err != nil {
			return fmt.Errorf("write run %s: finding %d: %w", runID, i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("write run %s: commit: %w", runID, err)
	}
	return nil
}
