package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/project"
	"github.com/roach88/rpgscan/internal/report"
	"github.com/roach88/rpgscan/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh temporary data directory, removed
// before Run returns.
//
// Execution flow:
//  1. Materialize the project into a temp data directory
//  2. Load it with the project loader
//  3. Create a scanner for the query (checking expect_error on rejection)
//  4. Scan and aggregate the findings
//  5. Compare the findings against expect
//
// A returned error means the scenario could not be executed at all, e.g. the
// project failed to load. Mismatches are reported in Result.Errors.
func Run(s *Scenario) (*Result, error) {
	return RunWithLogger(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with a caller-provided logger for the loader and
// engine.
func RunWithLogger(s *Scenario, logger *slog.Logger) (*Result, error) {
	dir, err := os.MkdirTemp("", "rpgscan-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := s.Project.WriteTo(dir); err != nil {
		return nil, fmt.Errorf("materialize project: %w", err)
	}

	p, err := project.NewLoader(logger).Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	q, err := s.Query.EngineQuery()
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Tables = p.Names
	result.RunID = testutil.NewFixedRunIDGenerator(s.RunID).Generate()

	scanner, err := engine.New(p.Names, q, engine.Options{MapIDs: s.Maps, Logger: logger})
	if err != nil {
		var qe *engine.QueryError
		if !errors.As(err, &qe) {
			return nil, err
		}
		if s.ExpectError == "" {
			result.AddError(fmt.Sprintf("query rejected: %v", err))
		} else if string(qe.Code) != s.ExpectError {
			result.AddError(fmt.Sprintf("expected error %s, got %s", s.ExpectError, qe.Code))
		}
		return result, nil
	}
	if s.ExpectError != "" {
		result.AddError(fmt.Sprintf("expected error %s, but the query was accepted", s.ExpectError))
		return result, nil
	}

	result.Results = report.Collect(scanner, scanner.Scan(p))
	compareFindings(result, s.Expect, result.Results.All())
	return result, nil
}

// compareFindings checks got against want, in order.
func compareFindings(result *Result, want []ExpectedFinding, got []engine.Finding) {
	if len(got) != len(want) {
		result.AddError(fmt.Sprintf("expected %d findings, got %d", len(want), len(got)))
	}

	n := min(len(got), len(want))
	for i := 0; i < n; i++ {
		w, g := want[i], got[i]
		if !strings.EqualFold(w.Access, g.Access.String()) {
			result.AddError(fmt.Sprintf("finding %d: access %s, expected %s", i, g.Access, strings.ToUpper(w.Access)))
		}
		if w.Active != g.Active {
			result.AddError(fmt.Sprintf("finding %d: active %t, expected %t", i, g.Active, w.Active))
		}
		if w.Page != g.Page {
			result.AddError(fmt.Sprintf("finding %d: page %d, expected %d", i, g.Page, w.Page))
		}
		if w.Line != g.Line {
			result.AddError(fmt.Sprintf("finding %d: line %d, expected %d", i, g.Line, w.Line))
		}
		if w.Description != g.Description {
			result.AddError(fmt.Sprintf("finding %d: description %q, expected %q", i, g.Description, w.Description))
		}
	}
}
