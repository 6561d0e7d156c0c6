package harness

import (
	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/report"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when the scan produced exactly the expected findings, or
	// failed with the expected query error.
	Pass bool

	// Errors contains mismatch messages. Empty if Pass is true.
	Errors []string

	// Results holds the aggregated findings. Nil when the query was
	// rejected.
	Results *report.Results

	// Tables are the name tables of the loaded project, for rendering.
	Tables *names.Tables

	// RunID is stamped on rendered reports.
	RunID string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError adds a mismatch message and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
