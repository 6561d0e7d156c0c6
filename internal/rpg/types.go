package rpg

import "fmt"

// Code is the numeric opcode of an event command.
type Code int64

// Opcodes the scanner understands. Every other code is carried through
// decoding but never matched.
const (
	CodeIfStatement      Code = 111
	CodeControlSwitch    Code = 121
	CodeControlVariable  Code = 122
	CodeScriptSingleLine Code = 355
	CodeScriptMultiLine  Code = 655
)

// String returns the editor name of the opcode.
func (c Code) String() string {
	switch c {
	case CodeIfStatement:
		return "IF_STATEMENT"
	case CodeControlSwitch:
		return "CONTROL_SWITCH"
	case CodeControlVariable:
		return "CONTROL_VARIABLE"
	case CodeScriptSingleLine:
		return "SCRIPT_SINGLE_LINE"
	case CodeScriptMultiLine:
		return "SCRIPT_MULTI_LINE"
	default:
		return fmt.Sprintf("CODE_%d", int64(c))
	}
}

// Trigger is the activation mode of a common event.
type Trigger int64

const (
	TriggerNone Trigger = iota
	TriggerAutorun
	TriggerParallel
)

func (t Trigger) String() string {
	switch t {
	case TriggerNone:
		return "NONE"
	case TriggerAutorun:
		return "AUTORUN"
	case TriggerParallel:
		return "PARALLEL"
	default:
		return fmt.Sprintf("TRIGGER_%d", int64(t))
	}
}

// Command is one decoded event command.
type Command struct {
	Code   Code
	Params []Param
	// Line is the 1-based position in the owning list. It is counted over the
	// raw list, so commands that failed to decode leave a gap.
	Line int
}

// Condition is the activation gate of an event page.
type Condition struct {
	Switch1ID     int64
	Switch1Valid  bool
	Switch2ID     int64
	Switch2Valid  bool
	VariableID    int64
	VariableValid bool
	VariableValue int64
}

// EventPage is one page of a map event.
type EventPage struct {
	// Number is the 1-based page number as shown in the editor.
	Number int
	// Conditions is nil when the page's conditions object failed to decode.
	Conditions *Condition
	List       []Command
}

// Event is a map event.
type Event struct {
	ID    int64
	Name  string
	Note  string
	X     int64
	Y     int64
	Pages []EventPage
}

// CommonEvent is an entry of CommonEvents.json.
type CommonEvent struct {
	ID       int64
	Name     string
	SwitchID int64
	Trigger  Trigger
	List     []Command
}

// HasTrigger reports whether the common event is gated by its switch.
func (c CommonEvent) HasTrigger() bool {
	return c.Trigger == TriggerAutorun || c.Trigger == TriggerParallel
}
