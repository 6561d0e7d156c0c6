// Package names holds the id to name tables of an RPG Maker project: maps,
// variables, switches and common events.
package names

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned when an id has no entry in a table.
var ErrNotFound = errors.New("identifier not found")

// Tables maps ids to display names. Use New to create one.
type Tables struct {
	maps         map[int64]string
	variables    map[int64]string
	switches     map[int64]string
	commonEvents map[int64]string
}

// New creates empty tables.
func New() *Tables {
	return &Tables{
		maps:         map[int64]string{},
		variables:    map[int64]string{},
		switches:     map[int64]string{},
		commonEvents: map[int64]string{},
	}
}

// SetMap records a map name.
func (t *Tables) SetMap(id int64, name string) { t.maps[id] = norm.NFC.String(name) }

// SetVariable records a variable name.
func (t *Tables) SetVariable(id int64, name string) { t.variables[id] = norm.NFC.String(name) }

// SetSwitch records a switch name.
func (t *Tables) SetSwitch(id int64, name string) { t.switches[id] = norm.NFC.String(name) }

// SetCommonEvent records a common event name.
func (t *Tables) SetCommonEvent(id int64, name string) { t.commonEvents[id] = norm.NFC.String(name) }

// LoadMapInfos fills the map table from a decoded MapInfos.json.
// Null entries and entries without an integer id and string name are skipped.
func (t *Tables) LoadMapInfos(doc gjson.Result) {
	doc.ForEach(func(_, v gjson.Result) bool {
		id, name := v.Get("id"), v.Get("name")
		if id.Type != gjson.Number || name.Type != gjson.String {
			return true
		}
		t.SetMap(id.Int(), name.Str)
		return true
	})
}

// LoadSystem fills the variable and switch tables from a decoded System.json.
// Both arrays are sparse: the array index is the id and null marks an absent
// entry.
func (t *Tables) LoadSystem(doc gjson.Result) error {
	variables := doc.Get("variables")
	if !variables.IsArray() {
		return fmt.Errorf("system data doesn't contain variables")
	}
	switches := doc.Get("switches")
	if !switches.IsArray() {
		return fmt.Errorf("system data doesn't contain switches")
	}

	loadSparse(variables, t.SetVariable)
	loadSparse(switches, t.SetSwitch)
	return nil
}

func loadSparse(arr gjson.Result, set func(int64, string)) {
	for id, v := range arr.Array() {
		if v.Type != gjson.String {
			continue
		}
		set(int64(id), v.Str)
	}
}

// LoadCommonEvents fills the common event table from a decoded
// CommonEvents.json.
func (t *Tables) LoadCommonEvents(doc gjson.Result) {
	doc.ForEach(func(_, v gjson.Result) bool {
		id, name := v.Get("id"), v.Get("name")
		if id.Type != gjson.Number || name.Type != gjson.String {
			return true
		}
		t.SetCommonEvent(id.Int(), name.Str)
		return true
	})
}

// Variable returns the name of a variable.
// Id 0 is reserved and never valid. An empty name is shown as "#<id>".
func (t *Tables) Variable(id int64) (string, error) {
	if id == 0 {
		return "", fmt.Errorf("variable #%d: %w", id, ErrNotFound)
	}
	name, ok := t.variables[id]
	if !ok {
		return "", fmt.Errorf("variable #%d: %w", id, ErrNotFound)
	}
	if name == "" {
		return fmt.Sprintf("#%d", id), nil
	}
	return name, nil
}

// VariableLabel is Variable for rendering: an unknown id becomes "#<id> ?".
func (t *Tables) VariableLabel(id int64) string {
	name, err := t.Variable(id)
	if err != nil {
		return unknown(id)
	}
	return name
}

// Switch returns the name of a switch. Unknown switches never fail; they are
// shown as "#<id> ?".
func (t *Tables) Switch(id int64) string {
	return lookup(t.switches, id)
}

// Map returns the name of a map.
func (t *Tables) Map(id int64) string {
	return lookup(t.maps, id)
}

// CommonEvent returns the name of a common event.
func (t *Tables) CommonEvent(id int64) string {
	return lookup(t.commonEvents, id)
}

// MapIDs returns every map id in ascending order.
func (t *Tables) MapIDs() []int64 {
	return sortedIDs(t.maps)
}

// VariableIDs returns every known variable id in ascending order.
func (t *Tables) VariableIDs() []int64 {
	return sortedIDs(t.variables)
}

// SwitchIDs returns every known switch id in ascending order.
func (t *Tables) SwitchIDs() []int64 {
	return sortedIDs(t.switches)
}

func lookup(table map[int64]string, id int64) string {
	name, ok := table[id]
	if !ok {
		return unknown(id)
	}
	if name == "" {
		return fmt.Sprintf("#%d", id)
	}
	return name
}

func unknown(id int64) string {
	return fmt.Sprintf("#%d ?", id)
}

func sortedIDs(table map[int64]string) []int64 {
	ids := make([]int64, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
