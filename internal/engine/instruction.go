package engine

import "github.com/roach88/rpgscan/internal/rpg"

// Conditional branch variant tags (parameter 0).
const (
	branchSwitch   = 0
	branchVariable = 1
	branchScript   = 12
)

// Conditional branch compare kinds (parameter 2 of the variable variant).
type compareKind int64

const (
	compareConstant compareKind = iota
	compareVariable
)

// Control variable operand kinds (parameter 3).
const (
	operandConstant = 0
	operandVariable = 1
	operandRandom   = 2
	operandGameData = 3
	operandScript   = 4
)

// instruction is a command decoded into its opcode's fixed schema.
// The set of implementations is closed.
type instruction interface {
	instruction()
}

// idRange is an inclusive range of ids. start == end is a single id.
type idRange struct {
	start int64
	end   int64
}

func (r idRange) contains(id int64) bool {
	return id >= r.start && id <= r.end
}

func (r idRange) single() bool {
	return r.start == r.end
}

// ifScript is a conditional branch on a script expression.
type ifScript struct {
	text string
}

// ifVariable is a conditional branch comparing a variable.
type ifVariable struct {
	id        int64
	compare   compareKind
	comparand int64
	operator  int64
}

// ifSwitch is a conditional branch on a switch.
type ifSwitch struct {
	id int64
	// off is true when the branch tests for OFF.
	off bool
}

// controlVariable assigns to a range of variables.
type controlVariable struct {
	target    idRange
	operation int64
	operand   operand
}

// controlSwitch sets a range of switches.
type controlSwitch struct {
	target idRange
	off    bool
}

// scriptLine is one line of a script command.
type scriptLine struct {
	text string
}

func (ifScript) instruction()        {}
func (ifVariable) instruction()      {}
func (ifSwitch) instruction()        {}
func (controlVariable) instruction() {}
func (controlSwitch) instruction()   {}
func (scriptLine) instruction()      {}

// operand is the right-hand side of a control variable command.
type operand interface {
	operand()
}

type constantOperand struct{ value int64 }
type variableOperand struct{ id int64 }
type randomOperand struct{ min, max int64 }
type gameDataOperand struct{}
type scriptOperand struct{ text string }

func (constantOperand) operand() {}
func (variableOperand) operand() {}
func (randomOperand) operand()   {}
func (gameDataOperand) operand() {}
func (scriptOperand) operand()   {}

// decodeInstruction decodes cmd into its opcode's schema.
// It returns nil when the opcode is not scanned or the parameters don't fit:
// wrong arity or a wrong tag at any position makes the command inert.
func decodeInstruction(cmd rpg.Command) instruction {
	switch cmd.Code {
	case rpg.CodeIfStatement:
		return decodeConditionalBranch(cmd.Params)
	case rpg.CodeControlVariable:
		return decodeControlVariable(cmd.Params)
	case rpg.CodeControlSwitch:
		return decodeControlSwitch(cmd.Params)
	case rpg.CodeScriptSingleLine, rpg.CodeScriptMultiLine:
		if len(cmd.Params) != 1 {
			return nil
		}
		text, ok := rpg.StringAt(cmd.Params, 0)
		if !ok {
			return nil
		}
		return scriptLine{text: text}
	default:
		return nil
	}
}

func decodeConditionalBranch(params []rpg.Param) instruction {
	tag, ok := rpg.IntAt(params, 0)
	if !ok {
		return nil
	}

	switch tag {
	case branchScript:
		if len(params) != 2 {
			return nil
		}
		text, ok := rpg.StringAt(params, 1)
		if !ok {
			return nil
		}
		return ifScript{text: text}

	case branchVariable:
		if len(params) != 5 || !rpg.AllInts(params) {
			return nil
		}
		id, _ := rpg.IntAt(params, 1)
		kind, _ := rpg.IntAt(params, 2)
		comparand, _ := rpg.IntAt(params, 3)
		operator, _ := rpg.IntAt(params, 4)
		if compareKind(kind) != compareConstant && compareKind(kind) != compareVariable {
			return nil
		}
		return ifVariable{id: id, compare: compareKind(kind), comparand: comparand, operator: operator}

	case branchSwitch:
		if len(params) != 3 || !rpg.AllInts(params) {
			return nil
		}
		id, _ := rpg.IntAt(params, 1)
		value, _ := rpg.IntAt(params, 2)
		return ifSwitch{id: id, off: value != 0}

	default:
		return nil
	}
}

func decodeControlVariable(params []rpg.Param) instruction {
	if len(params) < 4 {
		return nil
	}
	for i := 0; i < 4; i++ {
		if _, ok := rpg.IntAt(params, i); !ok {
			return nil
		}
	}
	start, _ := rpg.IntAt(params, 0)
	end, _ := rpg.IntAt(params, 1)
	operation, _ := rpg.IntAt(params, 2)
	kind, _ := rpg.IntAt(params, 3)

	cv := controlVariable{target: idRange{start: start, end: end}, operation: operation}

	switch kind {
	case operandConstant, operandVariable:
		if len(params) != 5 || !rpg.AllInts(params) {
			return nil
		}
		v, _ := rpg.IntAt(params, 4)
		if kind == operandConstant {
			cv.operand = constantOperand{value: v}
		} else {
			cv.operand = variableOperand{id: v}
		}
	case operandRandom:
		if len(params) != 6 || !rpg.AllInts(params) {
			return nil
		}
		lo, _ := rpg.IntAt(params, 4)
		hi, _ := rpg.IntAt(params, 5)
		cv.operand = randomOperand{min: lo, max: hi}
	case operandGameData:
		cv.operand = gameDataOperand{}
	case operandScript:
		if len(params) != 5 {
			return nil
		}
		text, ok := rpg.StringAt(params, 4)
		if !ok {
			return nil
		}
		cv.operand = scriptOperand{text: text}
	default:
		return nil
	}
	return cv
}

func decodeControlSwitch(params []rpg.Param) instruction {
	if len(params) != 3 || !rpg.AllInts(params) {
		return nil
	}
	start, _ := rpg.IntAt(params, 0)
	end, _ := rpg.IntAt(params, 1)
	value, _ := rpg.IntAt(params, 2)
	return controlSwitch{target: idRange{start: start, end: end}, off: value != 0}
}
