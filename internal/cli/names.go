package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/project"
)

// NamesOptions holds flags for the names command.
type NamesOptions struct {
	*RootOptions
	Variables bool
	Switches  bool
	DataDir   string
}

// NameEntry is one id and its display name.
type NameEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NameList is the result of the names command.
type NameList struct {
	Mode    string      `json:"mode"`
	Entries []NameEntry `json:"entries"`
}

func (l NameList) String() string {
	if len(l.Entries) == 0 {
		return fmt.Sprintf("No %s defined", strings.ToLower(l.Mode))
	}
	var b strings.Builder
	for i, e := range l.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "#%03d %s", e.ID, e.Name)
	}
	return b.String()
}

// NewNamesCommand creates the names command.
func NewNamesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NamesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "names (--variables | --switches) [id]",
		Short: "List variable or switch names",
		Long: `List the variable or switch name table of a project, or look up one id.

Looking up a variable that doesn't exist is an error. An unknown switch is
shown with a placeholder name, the same way scan reports it.

Example:
  rpgscan names --variables
  rpgscan names --switches 11 --data ./www/data`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Variables, "variables", false, "list variables")
	cmd.Flags().BoolVar(&opts.Switches, "switches", false, "list switches")
	cmd.Flags().StringVar(&opts.DataDir, "data", DefaultDataDir, "project data directory")

	return cmd
}

func runNames(cmd *cobra.Command, opts *NamesOptions, args []string) error {
	formatter := newFormatter(cmd, opts.RootOptions)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if cfg := opts.Config; cfg != nil {
		applyString(cmd, "data", &opts.DataDir, cfg.DataDir)
	}

	var mode engine.Mode
	switch {
	case opts.Variables && opts.Switches:
		return formatter.Fail(usageErrorf("--variables and --switches are mutually exclusive"))
	case opts.Variables:
		mode = engine.ModeVariables
	case opts.Switches:
		mode = engine.ModeSwitches
	default:
		return formatter.Fail(usageErrorf("one of --variables or --switches is required"))
	}

	var (
		id    int64
		hasID bool
	)
	if len(args) == 1 {
		parsed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return formatter.Fail(usageErrorf("invalid id %q: not a number", args[0]))
		}
		id, hasID = parsed, true
	}

	proj, err := project.NewLoader(logger).Load(opts.DataDir)
	if err != nil {
		return formatter.Fail(err)
	}

	list := NameList{Mode: mode.String()}
	if hasID {
		name, err := engine.TargetName(proj.Names, engine.Query{Mode: mode, ID: id})
		if err != nil {
			return formatter.Fail(err)
		}
		list.Entries = []NameEntry{{ID: id, Name: name}}
	} else {
		list.Entries = nameEntries(proj.Names, mode)
	}
	return formatter.Success(list)
}

func nameEntries(tables *names.Tables, mode engine.Mode) []NameEntry {
	ids := tables.VariableIDs()
	label := tables.VariableLabel
	if mode == engine.ModeSwitches {
		ids = tables.SwitchIDs()
		label = tables.Switch
	}

	entries := make([]NameEntry, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue // reserved slot
		}
		entries = append(entries, NameEntry{ID: id, Name: label(id)})
	}
	return entries
}
