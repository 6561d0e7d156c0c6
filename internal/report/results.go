package report

import (
	"fmt"
	"sort"

	"github.com/roach88/rpgscan/internal/engine"
)

// Section is the findings of one container, as indexes into the owning
// Results in first-discovery order.
type Section struct {
	Container engine.Container
	Indexes   []int
}

// Results holds every finding of one scan, grouped by container.
// No deduplication is performed.
type Results struct {
	query    engine.Query
	target   string
	findings []engine.Finding
	sections map[engine.Container]*Section
}

// NewResults creates an empty aggregator for q. target is the display name of
// the queried identifier.
func NewResults(q engine.Query, target string) *Results {
	return &Results{
		query:    q,
		target:   target,
		sections: make(map[engine.Container]*Section),
	}
}

// Collect aggregates the findings of a scan made by s.
func Collect(s *engine.Scanner, findings []engine.Finding) *Results {
	r := NewResults(s.Query(), s.TargetName())
	for _, f := range findings {
		r.Add(f)
	}
	return r
}

// Add appends f to its container's section.
func (r *Results) Add(f engine.Finding) {
	sec, ok := r.sections[f.Container]
	if !ok {
		sec = &Section{Container: f.Container}
		r.sections[f.Container] = sec
	}
	sec.Indexes = append(sec.Indexes, len(r.findings))
	r.findings = append(r.findings, f)
}

// Query returns the scanned query.
func (r *Results) Query() engine.Query { return r.query }

// Target returns the display name of the queried identifier.
func (r *Results) Target() string { return r.target }

// Label returns the query with its name, e.g. "variable #005 ('Gold')".
func (r *Results) Label() string {
	return fmt.Sprintf("%s ('%s')", r.query, r.target)
}

// Total returns the number of findings.
func (r *Results) Total() int { return len(r.findings) }

// ContainerCount returns the number of containers with at least one finding.
func (r *Results) ContainerCount() int { return len(r.sections) }

// CountKind returns the number of containers of the given kind.
func (r *Results) CountKind(kind engine.ContainerKind) int {
	n := 0
	for c := range r.sections {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Empty reports whether the scan found nothing.
func (r *Results) Empty() bool { return len(r.findings) == 0 }

// All returns every finding in discovery order.
func (r *Results) All() []engine.Finding { return r.findings }

// Sections returns the sections ordered maps first by ascending id, then
// common events by ascending id.
func (r *Results) Sections() []Section {
	out := make([]Section, 0, len(r.sections))
	for _, sec := range r.sections {
		out = append(out, *sec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Container, out[j].Container
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ID < b.ID
	})
	return out
}

// Findings returns the findings of sec in discovery order.
func (r *Results) Findings(sec Section) []engine.Finding {
	out := make([]engine.Finding, len(sec.Indexes))
	for i, idx := range sec.Indexes {
		out[i] = r.findings[idx]
	}
	return out
}
