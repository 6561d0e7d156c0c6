package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/project"
	"github.com/roach88/rpgscan/internal/report"
	"github.com/roach88/rpgscan/internal/store"
)

// DefaultDataDir is the project data directory used when neither --data nor
// the config file names one.
const DefaultDataDir = "data"

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	Variable int64
	Switch   int64
	DataDir  string
	Out      string
	Database string
	Maps     []int
	Color    string
}

// ScanSummary is printed instead of the report when the report goes to a file.
type ScanSummary struct {
	RunID      string `json:"run_id"`
	Target     string `json:"target"`
	Total      int    `json:"total"`
	Containers int    `json:"containers"`
	Out        string `json:"out"`
	Database   string `json:"db,omitempty"`
}

func (s ScanSummary) String() string {
	msg := fmt.Sprintf("Wrote %d finding(s) in %d container(s) for %s to %s", s.Total, s.Containers, s.Target, s.Out)
	if s.Database != "" {
		msg += fmt.Sprintf("\nExported run %s to %s", s.RunID, s.Database)
	}
	return msg
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan (--variable ID | --switch ID)",
		Short: "Report every use of a variable or switch",
		Long: `Scan every map and common event of an RPG Maker project for one game
variable or switch.

Each use is reported with its access kind (READ, WRITE or READ/WRITE), whether
the command is active, the owning event, page and line, and a rendered
description of the command.

Example:
  rpgscan scan --variable 5
  rpgscan scan --switch 11 --data ./www/data --map 1 --map 3
  rpgscan scan --variable 5 --format json --out report.json.zst --db runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.Variable, "variable", 0, "variable id to scan for")
	cmd.Flags().Int64Var(&opts.Switch, "switch", 0, "switch id to scan for")
	cmd.Flags().StringVar(&opts.DataDir, "data", DefaultDataDir, "project data directory")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the report to a file (.zst compresses)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "export the run to a SQLite database")
	cmd.Flags().IntSliceVar(&opts.Maps, "map", nil, "restrict the scan to these map ids (repeatable)")
	cmd.Flags().StringVar(&opts.Color, "color", string(report.ColorAuto), "colorize text output (auto|always|never)")

	return cmd
}

func runScan(cmd *cobra.Command, opts *ScanOptions) error {
	formatter := newFormatter(cmd, opts.RootOptions)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if cfg := opts.Config; cfg != nil {
		applyString(cmd, "data", &opts.DataDir, cfg.DataDir)
		applyString(cmd, "out", &opts.Out, cfg.Out)
		applyString(cmd, "db", &opts.Database, cfg.DB)
		applyString(cmd, "color", &opts.Color, cfg.Color)
	}

	q, err := scanQuery(cmd, opts)
	if err != nil {
		return formatter.Fail(err)
	}
	colorMode, err := report.ParseColorMode(opts.Color)
	if err != nil {
		return formatter.Fail(usageErrorf("%v", err))
	}

	proj, err := project.NewLoader(logger).Load(opts.DataDir)
	if err != nil {
		return formatter.Fail(err)
	}

	scanner, err := engine.New(proj.Names, q, engine.Options{MapIDs: mapIDs(opts.Maps), Logger: logger})
	if err != nil {
		return formatter.Fail(err)
	}

	logger.Info("scanning", "query", q.String(), "target", scanner.TargetName(), "maps", len(proj.Maps), "common_events", len(proj.CommonEvents))
	res := report.Collect(scanner, scanner.Scan(proj))
	logger.Info("scan complete", "findings", res.Total(), "containers", res.ContainerCount())

	gen := opts.RunIDGenerator
	if gen == nil {
		gen = report.UUIDv7Generator{}
	}
	runID := gen.Generate()

	// Render fully before writing anything: no partial reports.
	var rendered bytes.Buffer
	if opts.Out != "" {
		err = renderReport(&rendered, opts.Format, res, proj.Names, runID, report.PlainStyles())
	} else if !formatter.IsJSON() {
		err = renderReport(&rendered, opts.Format, res, proj.Names, runID, report.NewStyles(cmd.OutOrStdout(), colorMode))
	}
	if err != nil {
		return formatter.Fail(&OutputError{Path: opts.Out, Err: err})
	}

	if opts.Database != "" {
		if err := exportRun(cmd.Context(), logger, opts.Database, runID, res); err != nil {
			return formatter.Fail(err)
		}
	}

	if opts.Out != "" {
		if err := writeFile(opts.Out, rendered.Bytes()); err != nil {
			return formatter.Fail(err)
		}
		logger.Info("report written", "path", opts.Out)
		return formatter.SuccessWithRunID(ScanSummary{
			RunID:      runID,
			Target:     res.Label(),
			Total:      res.Total(),
			Containers: res.ContainerCount(),
			Out:        opts.Out,
			Database:   opts.Database,
		}, runID)
	}

	if formatter.IsJSON() {
		return formatter.SuccessWithRunID(report.NewDocument(res, proj.Names, runID), runID)
	}
	if _, err := formatter.Writer.Write(rendered.Bytes()); err != nil {
		return formatter.Fail(&OutputError{Err: err})
	}
	return nil
}

// scanQuery builds the query from --variable/--switch. Exactly one is required.
func scanQuery(cmd *cobra.Command, opts *ScanOptions) (engine.Query, error) {
	hasVar := cmd.Flags().Changed("variable")
	hasSwitch := cmd.Flags().Changed("switch")

	switch {
	case hasVar && hasSwitch:
		return engine.Query{}, usageErrorf("--variable and --switch are mutually exclusive")
	case hasVar:
		return engine.Query{Mode: engine.ModeVariables, ID: opts.Variable}, nil
	case hasSwitch:
		return engine.Query{Mode: engine.ModeSwitches, ID: opts.Switch}, nil
	default:
		return engine.Query{}, usageErrorf("one of --variable or --switch is required")
	}
}

func mapIDs(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func renderReport(buf *bytes.Buffer, format string, res *report.Results, tables *names.Tables, runID string, styles report.Styles) error {
	if format == "json" {
		return report.RenderJSON(buf, res, tables, runID)
	}
	return report.RenderText(buf, res, tables, styles)
}

func exportRun(ctx context.Context, logger *slog.Logger, path, runID string, res *report.Results) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Info("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return &StoreError{Path: path, Err: err}
	}
	defer st.Close()

	if err := st.WriteRun(ctx, runID, res); err != nil {
		return &StoreError{Path: path, Err: err}
	}
	logger.Info("run exported", "run_id", runID, "findings", res.Total())
	return nil
}

func writeFile(path string, data []byte) error {
	sink, err := report.OpenSink(path)
	if err != nil {
		return &OutputError{Path: path, Err: err}
	}
	if _, err := sink.Write(data); err != nil {
		_ = sink.Close()
		return &OutputError{Path: path, Err: err}
	}
	if err := sink.Close(); err != nil {
		return &OutputError{Path: path, Err: err}
	}
	return nil
}
