package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/rpgscan/internal/report"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is loaded before any subcommand runs.
	Config *Config

	// RunIDGenerator allows overriding the scan run id generator (for
	// testing). If nil, defaults to report.UUIDv7Generator.
	RunIDGenerator report.RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the rpgscan CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpgscan",
		Short: "rpgscan - find every use of an RPG Maker variable or switch",
		Long: `Scan an RPG Maker MV/MZ data directory for every place a game variable
or switch is read, written or used as an event page condition.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepareRoot(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+DefaultConfigFile+" if present)")

	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewNamesCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit code.
// Errors cobra raises before a command runs (unknown flags, wrong argument
// counts) are reported here as usage errors.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error [%s]: %v\n", ErrCodeUsage, err)
	return ExitCommandError
}

func prepareRoot(cmd *cobra.Command, opts *RootOptions) error {
	path, explicit := opts.ConfigPath, opts.ConfigPath != ""
	if !explicit {
		path = DefaultConfigFile
	}

	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return textFormatter(cmd, opts).Fail(err)
	}
	opts.Config = cfg
	applyString(cmd, "format", &opts.Format, cfg.Format)

	if !isValidFormat(opts.Format) {
		err := usageErrorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		return textFormatter(cmd, opts).Fail(err)
	}
	return nil
}

// newFormatter builds the formatter for a command's output streams.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func textFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	f := newFormatter(cmd, opts)
	f.Format = "text"
	return f
}

// newLogger returns a text slog logger on w at Info, or Debug when verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
