package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/names"
)

// Document is the JSON report.
type Document struct {
	RunID        string                       `json:"run_id"`
	Mode         string                       `json:"mode"`
	ID           int64                        `json:"id"`
	Name         string                       `json:"name"`
	Total        int                          `json:"total"`
	Maps         map[string]ContainerDocument `json:"maps"`
	CommonEvents map[string]ContainerDocument `json:"common_events"`
}

// ContainerDocument is one map or common event of the JSON report, keyed by
// its id in Document.
type ContainerDocument struct {
	Name     string            `json:"name"`
	Findings []FindingDocument `json:"findings"`
}

// FindingDocument is one finding of the JSON report. Page and line are
// omitted when they don't apply.
type FindingDocument struct {
	Access      string        `json:"access"`
	Active      bool          `json:"active"`
	Owner       OwnerDocument `json:"owner"`
	Page        int           `json:"page,omitempty"`
	Line        int           `json:"line,omitempty"`
	Description string        `json:"description"`
}

// OwnerDocument is the event or common event a finding was found in.
type OwnerDocument struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	X    int64  `json:"x"`
	Y    int64  `json:"y"`
}

// NewDocument builds the JSON report of res.
func NewDocument(res *Results, tables *names.Tables, runID string) Document {
	q := res.Query()
	doc := Document{
		RunID:        runID,
		Mode:         q.Mode.String(),
		ID:           q.ID,
		Name:         res.Target(),
		Total:        res.Total(),
		Maps:         map[string]ContainerDocument{},
		CommonEvents: map[string]ContainerDocument{},
	}

	for _, sec := range res.Sections() {
		key := strconv.FormatInt(sec.Container.ID, 10)
		cd := ContainerDocument{Findings: make([]FindingDocument, 0, len(sec.Indexes))}
		for _, f := range res.Findings(sec) {
			cd.Findings = append(cd.Findings, findingDocument(f))
		}

		switch sec.Container.Kind {
		case engine.ContainerCommonEvent:
			cd.Name = tables.CommonEvent(sec.Container.ID)
			doc.CommonEvents[key] = cd
		default:
			cd.Name = tables.Map(sec.Container.ID)
			doc.Maps[key] = cd
		}
	}
	return doc
}

func findingDocument(f engine.Finding) FindingDocument {
	return FindingDocument{
		Access: f.Access.String(),
		Active: f.Active,
		Owner: OwnerDocument{
			ID:   f.Owner.ID,
			Name: f.Owner.Name,
			X:    f.Owner.X,
			Y:    f.Owner.Y,
		},
		Page:        f.Page,
		Line:        f.Line,
		Description: f.Description,
	}
}

// RenderJSON writes the indented JSON report of res to w.
// Descriptions are written verbatim, without HTML escaping.
func RenderJSON(w io.Writer, res *Results, tables *names.Tables, runID string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(res, tables, runID)); err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
