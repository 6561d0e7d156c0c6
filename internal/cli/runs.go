package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
}

// RunEntry is one exported scan run.
type RunEntry struct {
	RunID string `json:"run_id"`
	Mode  string `json:"mode"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// RunList is the result of listing runs.
type RunList struct {
	Runs []RunEntry `json:"runs"`
}

func (l RunList) String() string {
	if len(l.Runs) == 0 {
		return "No runs exported"
	}
	var b strings.Builder
	for i, r := range l.Runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %-9s #%03d %-20q %d finding(s)", r.RunID, r.Mode, r.ID, r.Name, r.Total)
	}
	return b.String()
}

// StoredFinding is one exported finding.
type StoredFinding struct {
	Container   string `json:"container"`
	ContainerID int64  `json:"container_id"`
	Owner       string `json:"owner"`
	OwnerID     int64  `json:"owner_id"`
	X           int64  `json:"x"`
	Y           int64  `json:"y"`
	Page        int    `json:"page,omitempty"`
	Line        int    `json:"line,omitempty"`
	Access      string `json:"access"`
	Active      bool   `json:"active"`
	Description string `json:"description"`
}

// RunDetail is one exported run with its findings.
type RunDetail struct {
	Run      RunEntry        `json:"run"`
	Findings []StoredFinding `json:"findings"`
}

func (d RunDetail) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s: %s #%03d (%q), %d finding(s)", d.Run.RunID, strings.ToLower(d.Run.Mode), d.Run.ID, d.Run.Name, d.Run.Total)
	for _, f := range d.Findings {
		state := "OFF"
		if f.Active {
			state = "ON"
		}
		fmt.Fprintf(&b, "\n  %s #%03d  Event #%03d (%q)", f.Container, f.ContainerID, f.OwnerID, f.Owner)
		if f.Page > 0 {
			fmt.Fprintf(&b, " page %02d", f.Page)
		}
		if f.Line > 0 {
			fmt.Fprintf(&b, " line %03d", f.Line)
		}
		fmt.Fprintf(&b, "  %s %s  %s", state, f.Access, f.Description)
	}
	return b.String()
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs --db <file> [run-id]",
		Short: "List scan runs exported to a database",
		Long: `List the scan runs exported with "scan --db", oldest first, or show the
findings of one run.

Example:
  rpgscan runs --db runs.db
  rpgscan runs --db runs.db 0192f0c1-7a3e-7c4d-9b1a-2f6e8d0c4b5a --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	return cmd
}

func runRuns(cmd *cobra.Command, opts *RunsOptions, args []string) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	if cfg := opts.Config; cfg != nil {
		applyString(cmd, "db", &opts.Database, cfg.DB)
	}
	if opts.Database == "" {
		return formatter.Fail(usageErrorf("--db is required"))
	}
	// Listing never creates a database.
	if _, err := os.Stat(opts.Database); err != nil {
		return formatter.Fail(usageErrorf("database %s: %v", opts.Database, err))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(&StoreError{Path: opts.Database, Err: err})
	}
	defer st.Close()

	ctx := cmd.Context()
	if len(args) == 0 {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return formatter.Fail(&StoreError{Path: opts.Database, Err: err})
		}
		list := RunList{Runs: make([]RunEntry, 0, len(runs))}
		for _, r := range runs {
			list.Runs = append(list.Runs, runEntry(r))
		}
		return formatter.Success(list)
	}

	run, err := st.ReadRun(ctx, args[0])
	if err != nil {
		return formatter.Fail(&StoreError{Path: opts.Database, Err: err})
	}
	findings, err := st.ReadFindings(ctx, run.RunID)
	if err != nil {
		return formatter.Fail(&StoreError{Path: opts.Database, Err: err})
	}

	detail := RunDetail{Run: runEntry(run), Findings: make([]StoredFinding, 0, len(findings))}
	for _, f := range findings {
		detail.Findings = append(detail.Findings, storedFinding(f))
	}
	return formatter.SuccessWithRunID(detail, run.RunID)
}

func runEntry(r store.Run) RunEntry {
	return RunEntry{RunID: r.RunID, Mode: r.Mode.String(), ID: r.QueryID, Name: r.QueryName, Total: r.Total}
}

func storedFinding(f engine.Finding) StoredFinding {
	return StoredFinding{
		Container:   f.Container.Kind.String(),
		ContainerID: f.Container.ID,
		Owner:       f.Owner.Name,
		OwnerID:     f.Owner.ID,
		X:           f.Owner.X,
		Y:           f.Owner.Y,
		Page:        f.Page,
		Line:        f.Line,
		Access:      f.Access.String(),
		Active:      f.Active,
		Description: f.Description,
	}
}
