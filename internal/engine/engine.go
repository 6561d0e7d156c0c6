package engine

import (
	"log/slog"

	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/project"
)

// Options configures a Scanner.
type Options struct {
	// MapIDs restricts the scan to these maps. Empty means every map.
	// Common events are always scanned.
	MapIDs []int64

	// Script overrides the script text matcher. Nil uses NewScriptMatcher.
	Script ScriptMatcher

	// Logger receives warnings about malformed commands. Nil uses
	// slog.Default().
	Logger *slog.Logger
}

// Scanner classifies every usage of one identifier in a project.
//
// A Scanner holds no state between calls to Scan and is safe to reuse.
type Scanner struct {
	query  Query
	target string
	names  *names.Tables
	script ScriptMatcher
	logger *slog.Logger
	maps   map[int64]bool
}

// New validates q against tables and creates a Scanner.
//
// Returns a *QueryError if the queried variable doesn't exist. This happens
// before any scanning, so a failed query never produces partial output.
func New(tables *names.Tables, q Query, opts Options) (*Scanner, error) {
	target, err := TargetName(tables, q)
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		query:  q,
		target: target,
		names:  tables,
		script: opts.Script,
		logger: opts.Logger,
	}
	if s.script == nil {
		s.script = NewScriptMatcher(q)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if len(opts.MapIDs) > 0 {
		s.maps = make(map[int64]bool, len(opts.MapIDs))
		for _, id := range opts.MapIDs {
			s.maps[id] = true
		}
	}
	return s, nil
}

// Query returns the scanned query.
func (s *Scanner) Query() Query {
	return s.query
}

// TargetName returns the display name of the queried identifier.
func (s *Scanner) TargetName() string {
	return s.target
}

// Scan walks the project once and returns every finding in discovery order.
//
// Within an event page the condition gate finding comes before the page's
// command findings, and command findings are in ascending line order.
func (s *Scanner) Scan(p *project.Project) []Finding {
	var findings []Finding

	for _, m := range p.Maps {
		if s.maps != nil && !s.maps[m.ID] {
			continue
		}
		container := Container{Kind: ContainerMap, ID: m.ID}

		for _, ev := range m.Events {
			owner := Owner{ID: ev.ID, Name: ev.Name, X: ev.X, Y: ev.Y}

			for _, page := range ev.Pages {
				base := Finding{Container: container, Owner: owner, Page: page.Number}

				if page.Conditions != nil {
					if mt, ok := s.matchCondition(*page.Conditions); ok {
						findings = append(findings, mt.finding(base, 0))
					}
				}
				for _, cmd := range page.List {
					if mt, ok := s.matchCommand(cmd); ok {
						findings = append(findings, mt.finding(base, cmd.Line))
					}
				}
			}
		}
	}

	for _, ce := range p.CommonEvents {
		base := Finding{
			Container: Container{Kind: ContainerCommonEvent, ID: ce.ID},
			Owner:     Owner{ID: ce.ID, Name: ce.Name},
		}

		if mt, ok := s.matchTrigger(ce); ok {
			findings = append(findings, mt.finding(base, 0))
		}
		for _, cmd := range ce.List {
			if mt, ok := s.matchCommand(cmd); ok {
				findings = append(findings, mt.finding(base, cmd.Line))
			}
		}
	}

	s.logger.Debug("scan complete", "query", s.query.String(), "findings", len(findings))
	return findings
}

func (m match) finding(base Finding, line int) Finding {
	base.Access = m.access
	base.Active = m.active
	base.Line = line
	base.Description = m.desc
	return base
}
