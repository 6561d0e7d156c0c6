package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/rpgscan/internal/engine"
)

// Run is one stored scan run.
type Run struct {
	RunID     string
	Mode      engine.Mode
	QueryID   int64
	QueryName string
	Total     int
}

// Query returns the query the run scanned for.
func (r Run) Query() engine.Query {
	return engine.Query{Mode: r.Mode, ID: r.QueryID}
}

// ListRuns returns every stored run ordered by run id.
//
// Returns an empty slice (not nil) if the store holds no runs.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, mode, query_id, query_name, total
		FROM runs
		ORDER BY run_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a single run by id.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, mode, query_id, query_name, total
		FROM runs
		WHERE run_id = ?
	`, runID)
	return scanRun(row)
}

// ReadFindings returns the findings of a run in discovery order.
//
// Returns an empty slice (not nil) for an unknown run or a run without
// findings.
func (s *Store) ReadFindings(ctx context.Context, runID string) ([]engine.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT container_kind, container_id, owner_id, owner_name, x, y, page, line, access, active, description
		FROM findings
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	findings := []engine.Finding{}
	for rows.Next() {
		var (
			f      engine.Finding
			kind   string
			access string
		)
		err := rows.Scan(
			&kind, &f.Container.ID,
			&f.Owner.ID, &f.Owner.Name, &f.Owner.X, &f.Owner.Y,
			&f.Page, &f.Line, &access, &f.Active, &f.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		if f.Container.Kind, err = parseContainerKind(kind); err != nil {
			return nil, err
		}
		if f.Access, err = parseAccess(access); err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}
	return findings, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run  Run
		mode string
	)
	if err := row.Scan(&run.RunID, &mode, &run.QueryID, &run.QueryName, &run.Total); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	m, err := engine.ParseMode(mode)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: %w", run.RunID, err)
	}
	run.Mode = m
	return run, nil
}

func parseAccess(s string) (engine.Access, error) {
	for _, a := range []engine.Access{engine.AccessRead, engine.AccessWrite, engine.AccessReadWrite} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown access %q in store", s)
}

func parseContainerKind(s string) (engine.ContainerKind, error) {
	for _, k := range []engine.ContainerKind{engine.ContainerMap, engine.ContainerCommonEvent} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown container kind %q in store", s)
}
