package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/project"
)

const (
	banner = "========================================="
	rule   = "--------------------------------------------------"
)

// RenderText writes the human-readable report of res to w.
//
// The report is built in memory and written with a single call, so a failed
// render never leaves partial output behind.
func RenderText(w io.Writer, res *Results, tables *names.Tables, styles Styles) error {
	var b strings.Builder

	if res.Empty() {
		b.WriteString(styles.paint(styles.Missing, "Couldn't locate any usage of "+res.Label()))
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Found %s yielding %s using %s\n",
		styles.paint(styles.Count, containerPhrase(res)),
		styles.paint(styles.Count, plural(res.Total(), "instance", "instances")),
		res.Label())
	b.WriteString(banner + "\n")

	for _, sec := range res.Sections() {
		b.WriteByte('\n')
		b.WriteString(styles.paint(styles.Heading, sectionHeading(sec.Container, tables)))
		b.WriteByte('\n')
		b.WriteString(rule + "\n")

		var st groupState
		for _, f := range res.Findings(sec) {
			var brk bool
			st, brk = st.next(f)
			if brk {
				b.WriteByte('\n')
			}
			writeFinding(&b, f, styles)
		}
	}

	b.WriteString(banner + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// groupState is the accumulator of the owner grouping fold. A finding starts
// a new group, preceded by a blank line, when its owner differs from the
// previous finding's owner in the same section.
type groupState struct {
	started bool
	owner   int64
}

func (st groupState) next(f engine.Finding) (groupState, bool) {
	brk := st.started && st.owner != f.Owner.ID
	return groupState{started: true, owner: f.Owner.ID}, brk
}

func writeFinding(b *strings.Builder, f engine.Finding, styles Styles) {
	state := styles.paint(styles.Inactive, "OFF")
	if f.Active {
		state = styles.paint(styles.Active, "ON")
	}
	fmt.Fprintf(b, "%s %s\n", state, accessTag(f.Access, styles))

	switch f.Container.Kind {
	case engine.ContainerCommonEvent:
		fmt.Fprintf(b, "\t@ on Common Event #%03d ('%s'):\n", f.Owner.ID, f.Owner.Name)
	default:
		fmt.Fprintf(b, "\t@ [%d, %d] on Event #%03d ('%s') on Event Page #%02d:\n",
			f.Owner.X, f.Owner.Y, f.Owner.ID, f.Owner.Name, f.Page)
	}

	if f.HasLine() {
		fmt.Fprintf(b, "\t\t%s | %s\n", styles.paint(styles.Line, fmt.Sprintf("Line %03d", f.Line)), f.Description)
	} else {
		fmt.Fprintf(b, "\t\t%s\n", f.Description)
	}
}

func accessTag(a engine.Access, styles Styles) string {
	switch a {
	case engine.AccessRead:
		return styles.paint(styles.Read, "[READ]")
	case engine.AccessWrite:
		return styles.paint(styles.Write, "[WRITE]")
	default:
		return styles.paint(styles.ReadWrite, "[READ/WRITE]")
	}
}

func sectionHeading(c engine.Container, tables *names.Tables) string {
	if c.Kind == engine.ContainerCommonEvent {
		return fmt.Sprintf("CommonEvent #%03d ('%s')", c.ID, tables.CommonEvent(c.ID))
	}
	return fmt.Sprintf("%s ('%s')", project.MapFileName(c.ID), tables.Map(c.ID))
}

// containerPhrase returns e.g. "2 maps", "1 common event" or
// "1 map and 3 common events".
func containerPhrase(res *Results) string {
	maps := res.CountKind(engine.ContainerMap)
	events := res.CountKind(engine.ContainerCommonEvent)

	switch {
	case events == 0:
		return plural(maps, "map", "maps")
	case maps == 0:
		return plural(events, "common event", "common events")
	default:
		return plural(maps, "map", "maps") + " and " + plural(events, "common event", "common events")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
