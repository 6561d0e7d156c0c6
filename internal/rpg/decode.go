package rpg

import (
	"log/slog"

	"github.com/tidwall/gjson"
)

// Decoder turns generic gjson trees into typed project records.
//
// Every Decode method returns false for a record that does not match its
// schema. The reason is logged at debug level and the caller skips the
// record; nothing is fatal at this layer.
type Decoder struct {
	Logger *slog.Logger
}

// NewDecoder creates a Decoder. A nil logger falls back to slog.Default().
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{Logger: logger}
}

func (d *Decoder) reject(kind, reason string, args ...any) {
	if d == nil || d.Logger == nil {
		return
	}
	d.Logger.Debug("skipping "+kind+": "+reason, args...)
}

// Command decodes one entry of a command list. line is the 1-based position
// of the entry in its list.
func (d *Decoder) Command(r gjson.Result, line int) (Command, bool) {
	code := r.Get("code")
	if !isInteger(code) {
		d.reject("command", "code missing or not an integer", "line", line)
		return Command{}, false
	}
	params := r.Get("parameters")
	if !params.Exists() {
		d.reject("command", "parameters missing", "line", line, "code", code.Int())
		return Command{}, false
	}

	cmd := Command{Code: Code(code.Int()), Line: line}
	params.ForEach(func(_, v gjson.Result) bool {
		if p, ok := DecodeParam(v); ok {
			cmd.Params = append(cmd.Params, p)
		}
		return true
	})
	return cmd, true
}

// List decodes a command list, dropping entries that fail to decode.
func (d *Decoder) List(r gjson.Result) []Command {
	var out []Command
	line := 0
	r.ForEach(func(_, v gjson.Result) bool {
		line++
		if cmd, ok := d.Command(v, line); ok {
			out = append(out, cmd)
		}
		return true
	})
	return out
}

// Condition decodes an event page conditions object.
// All seven fields must be present with the right JSON type.
func (d *Decoder) Condition(r gjson.Result) (Condition, bool) {
	ints := []string{"switch1Id", "switch2Id", "variableId", "variableValue"}
	for _, key := range ints {
		if !isInteger(r.Get(key)) {
			d.reject("condition", key+" missing or not an integer")
			return Condition{}, false
		}
	}
	bools := []string{"switch1Valid", "switch2Valid", "variableValid"}
	for _, key := range bools {
		if !r.Get(key).IsBool() {
			d.reject("condition", key+" missing or not a boolean")
			return Condition{}, false
		}
	}

	return Condition{
		Switch1ID:     r.Get("switch1Id").Int(),
		Switch1Valid:  r.Get("switch1Valid").Bool(),
		Switch2ID:     r.Get("switch2Id").Int(),
		Switch2Valid:  r.Get("switch2Valid").Bool(),
		VariableID:    r.Get("variableId").Int(),
		VariableValid: r.Get("variableValid").Bool(),
		VariableValue: r.Get("variableValue").Int(),
	}, true
}

// Page decodes an event page. number is the 1-based page number.
// A page whose conditions fail to decode is kept with nil Conditions.
func (d *Decoder) Page(r gjson.Result, number int) (EventPage, bool) {
	if !r.Get("conditions").Exists() {
		d.reject("event page", "conditions missing", "page", number)
		return EventPage{}, false
	}
	if !r.Get("list").Exists() {
		d.reject("event page", "list missing", "page", number)
		return EventPage{}, false
	}

	page := EventPage{Number: number, List: d.List(r.Get("list"))}
	if cond, ok := d.Condition(r.Get("conditions")); ok {
		page.Conditions = &cond
	}
	return page, true
}

// Event decodes a map event.
func (d *Decoder) Event(r gjson.Result) (Event, bool) {
	for _, key := range []string{"x", "y", "id"} {
		if !isInteger(r.Get(key)) {
			d.reject("event", key+" missing or not an integer")
			return Event{}, false
		}
	}
	if r.Get("name").Type != gjson.String {
		d.reject("event", "name missing or not a string", "id", r.Get("id").Int())
		return Event{}, false
	}
	if !r.Get("pages").Exists() {
		d.reject("event", "pages missing", "id", r.Get("id").Int())
		return Event{}, false
	}

	ev := Event{
		ID:   r.Get("id").Int(),
		Name: r.Get("name").Str,
		Note: r.Get("note").Str,
		X:    r.Get("x").Int(),
		Y:    r.Get("y").Int(),
	}
	number := 0
	r.Get("pages").ForEach(func(_, v gjson.Result) bool {
		number++
		if page, ok := d.Page(v, number); ok {
			ev.Pages = append(ev.Pages, page)
		}
		return true
	})
	return ev, true
}

// CommonEvent decodes an entry of CommonEvents.json.
func (d *Decoder) CommonEvent(r gjson.Result) (CommonEvent, bool) {
	for _, key := range []string{"id", "switchId", "trigger"} {
		if !isInteger(r.Get(key)) {
			d.reject("common event", key+" missing or not an integer")
			return CommonEvent{}, false
		}
	}
	if r.Get("name").Type != gjson.String {
		d.reject("common event", "name missing or not a string", "id", r.Get("id").Int())
		return CommonEvent{}, false
	}
	if !r.Get("list").Exists() {
		d.reject("common event", "list missing", "id", r.Get("id").Int())
		return CommonEvent{}, false
	}

	return CommonEvent{
		ID:       r.Get("id").Int(),
		Name:     r.Get("name").Str,
		SwitchID: r.Get("switchId").Int(),
		Trigger:  Trigger(r.Get("trigger").Int()),
		List:     d.List(r.Get("list")),
	}, true
}

// IsEmpty reports whether r is an absent, null or empty entry of an events or
// common events array.
func IsEmpty(r gjson.Result) bool {
	switch {
	case !r.Exists(), r.Type == gjson.Null:
		return true
	case r.IsObject():
		return len(r.Map()) == 0
	case r.IsArray():
		return len(r.Array()) == 0
	default:
		return false
	}
}
