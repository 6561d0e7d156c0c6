// Package testutil builds RPG Maker data directories for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Command is a raw event command as stored in the data files.
type Command struct {
	Code       int   `json:"code" yaml:"code"`
	Indent     int   `json:"indent" yaml:"indent,omitempty"`
	Parameters []any `json:"parameters" yaml:"parameters"`
}

// Conditions is a raw event page conditions object.
type Conditions struct {
	Switch1ID     int  `json:"switch1Id" yaml:"switch1_id"`
	Switch1Valid  bool `json:"switch1Valid" yaml:"switch1_valid"`
	Switch2ID     int  `json:"switch2Id" yaml:"switch2_id"`
	Switch2Valid  bool `json:"switch2Valid" yaml:"switch2_valid"`
	VariableID    int  `json:"variableId" yaml:"variable_id"`
	VariableValid bool `json:"variableValid" yaml:"variable_valid"`
	VariableValue int  `json:"variableValue" yaml:"variable_value"`
}

// DefaultConditions returns the editor defaults for a new page: every slot
// points at id 1 and nothing is enabled.
func DefaultConditions() Conditions {
	return Conditions{Switch1ID: 1, Switch2ID: 1, VariableID: 1}
}

// Page is a raw event page.
type Page struct {
	Conditions Conditions `json:"conditions" yaml:"conditions"`
	List       []Command  `json:"list" yaml:"list"`
}

// Event is a raw map event.
type Event struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Note  string `json:"note" yaml:"note,omitempty"`
	X     int    `json:"x" yaml:"x"`
	Y     int    `json:"y" yaml:"y"`
	Pages []Page `json:"pages" yaml:"pages"`
}

// MapData is a raw map.
type MapData struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name"`
	Events []Event `yaml:"events"`
}

// CommonEvent is a raw common event.
type CommonEvent struct {
	ID       int       `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	SwitchID int       `json:"switchId" yaml:"switch_id"`
	Trigger  int       `json:"trigger" yaml:"trigger"`
	List     []Command `json:"list" yaml:"list"`
}

// Project describes a data directory to materialize.
type Project struct {
	Variables    map[int]string `yaml:"variables"`
	Switches     map[int]string `yaml:"switches"`
	Maps         []MapData      `yaml:"maps"`
	CommonEvents []CommonEvent  `yaml:"common_events"`
}

// NewProject creates an empty project description.
func NewProject() *Project {
	return &Project{
		Variables: map[int]string{},
		Switches:  map[int]string{},
	}
}

// Variable names a variable.
func (p *Project) Variable(id int, name string) *Project {
	p.Variables[id] = name
	return p
}

// Switch names a switch.
func (p *Project) Switch(id int, name string) *Project {
	p.Switches[id] = name
	return p
}

// Map adds a map with the given events.
func (p *Project) Map(id int, name string, events ...Event) *Project {
	p.Maps = append(p.Maps, MapData{ID: id, Name: name, Events: events})
	return p
}

// CommonEvent adds a common event.
func (p *Project) CommonEvent(ce CommonEvent) *Project {
	p.CommonEvents = append(p.CommonEvents, ce)
	return p
}

// Write materializes the project into a fresh temp directory and returns it.
func (p *Project) Write(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := p.WriteTo(dir); err != nil {
		t.Fatalf("write project: %v", err)
	}
	return dir
}

// WriteTo materializes the project into dir, which must exist.
//
// The layout mirrors an exported project: MapInfos.json and CommonEvents.json
// start with a null entry, and the sparse name arrays in System.json are
// indexed by id.
func (p *Project) WriteTo(dir string) error {
	mapInfos := []any{nil}
	for _, m := range p.Maps {
		mapInfos = append(mapInfos, map[string]any{"id": m.ID, "name": m.Name})
		events := []any{nil}
		for _, ev := range m.Events {
			events = append(events, ev)
		}
		if err := writeJSON(filepath.Join(dir, fmt.Sprintf("Map%03d.json", m.ID)), map[string]any{"events": events}); err != nil {
			return err
		}
	}
	if err := writeJSON(filepath.Join(dir, "MapInfos.json"), mapInfos); err != nil {
		return err
	}

	system := map[string]any{
		"variables": sparse(p.Variables),
		"switches":  sparse(p.Switches),
	}
	if err := writeJSON(filepath.Join(dir, "System.json"), system); err != nil {
		return err
	}

	commonEvents := []any{nil}
	for _, ce := range p.CommonEvents {
		if ce.List == nil {
			ce.List = []Command{}
		}
		commonEvents = append(commonEvents, ce)
	}
	return writeJSON(filepath.Join(dir, "CommonEvents.json"), commonEvents)
}

// sparse turns an id to name map into an array indexed by id with null gaps.
func sparse(names map[int]string) []any {
	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	size := 1
	if len(ids) > 0 {
		size = ids[len(ids)-1] + 1
	}
	out := make([]any, size)
	for _, id := range ids {
		out[id] = names[id]
	}
	if _, ok := names[0]; !ok {
		out[0] = ""
	}
	return out
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Cmd is shorthand for a command with the given code and parameters.
func Cmd(code int, params ...any) Command {
	if params == nil {
		params = []any{}
	}
	return Command{Code: code, Parameters: params}
}

// SinglePage returns an event with one page holding the given commands under
// default conditions.
func SinglePage(id int, name string, x, y int, list ...Command) Event {
	if list == nil {
		list = []Command{}
	}
	return Event{
		ID: id, Name: name, X: x, Y: y,
		Pages: []Page{{Conditions: DefaultConditions(), List: list}},
	}
}
