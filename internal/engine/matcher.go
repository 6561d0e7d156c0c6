package engine

import (
	"fmt"

	"github.com/roach88/rpgscan/internal/rpg"
)

var operatorSymbols = map[int64]string{
	0: "=",
	1: ">=",
	2: "<=",
	3: ">",
	4: "<",
	5: "!=",
}

var operationSymbols = map[int64]string{
	0: "=",
	1: "+=",
	2: "-=",
	3: "*=",
	4: "/=",
	5: "%=",
}

// match is an accepted matcher result, before location is attached.
type match struct {
	access Access
	active bool
	desc   string
}

// matchCondition is the event page condition gate.
//
// Id 1 is the editor's default for every slot, so a slot naming id 1 only
// counts when its validity flag is set.
func (s *Scanner) matchCondition(c rpg.Condition) (match, bool) {
	q := s.query.ID

	switch s.query.Mode {
	case ModeVariables:
		if c.VariableID != q {
			return match{}, false
		}
		if q == 1 && !c.VariableValid {
			return match{}, false
		}
		return match{
			access: AccessRead,
			active: c.VariableValid,
			desc:   fmt.Sprintf("IF {%s} >= %d:", s.variable(c.VariableID), c.VariableValue),
		}, true

	case ModeSwitches:
		slot1 := c.Switch1ID == q && (q != 1 || c.Switch1Valid)
		slot2 := c.Switch2ID == q && (q != 1 || c.Switch2Valid)
		if !slot1 && !slot2 {
			return match{}, false
		}

		var desc string
		switch {
		case c.Switch1Valid && c.Switch2Valid:
			desc = fmt.Sprintf("IF {%s} && {%s}:", s.switchName(c.Switch1ID), s.switchName(c.Switch2ID))
		case c.Switch1Valid:
			desc = fmt.Sprintf("IF {%s}:", s.switchName(c.Switch1ID))
		case c.Switch2Valid:
			desc = fmt.Sprintf("IF {%s}:", s.switchName(c.Switch2ID))
		case slot1:
			desc = fmt.Sprintf("IF {%s}:", s.switchName(c.Switch1ID))
		default:
			desc = fmt.Sprintf("IF {%s}:", s.switchName(c.Switch2ID))
		}
		return match{
			access: AccessRead,
			active: c.Switch1Valid || c.Switch2Valid,
			desc:   desc,
		}, true
	}
	return match{}, false
}

// matchTrigger is the common event trigger gate.
func (s *Scanner) matchTrigger(ce rpg.CommonEvent) (match, bool) {
	if s.query.Mode != ModeSwitches || !ce.HasTrigger() {
		return match{}, false
	}
	if ce.SwitchID != s.query.ID {
		return match{}, false
	}
	return match{
		access: AccessRead,
		active: true,
		desc:   fmt.Sprintf("HAS TRIGGER: %s", ce.Trigger),
	}, true
}

// matchCommand dispatches a command to the matcher of its decoded variant.
func (s *Scanner) matchCommand(cmd rpg.Command) (match, bool) {
	switch in := decodeInstruction(cmd).(type) {
	case ifScript:
		return s.matchScript(in.text)
	case ifVariable:
		return s.matchIfVariable(in)
	case ifSwitch:
		return s.matchIfSwitch(in)
	case controlVariable:
		return s.matchControlVariable(in)
	case controlSwitch:
		return s.matchControlSwitch(in)
	case scriptLine:
		return s.matchScript(in.text)
	default:
		return match{}, false
	}
}

func (s *Scanner) matchIfVariable(in ifVariable) (match, bool) {
	if s.query.Mode != ModeVariables {
		return match{}, false
	}
	q := s.query.ID
	switch in.compare {
	case compareConstant:
		if in.id != q {
			return match{}, false
		}
	case compareVariable:
		if in.id != q || in.comparand != q {
			return match{}, false
		}
	}

	op, ok := operatorSymbols[in.operator]
	if !ok {
		s.logger.Warn("conditional branch operator out of range", "operator", in.operator)
		return match{access: AccessRead, active: true, desc: "malformed operator"}, true
	}

	var desc string
	if in.compare == compareVariable {
		desc = fmt.Sprintf("IF {%s} %s {%s}:", s.variable(in.id), op, s.variable(in.comparand))
	} else {
		desc = fmt.Sprintf("IF {%s} %s %d:", s.variable(in.id), op, in.comparand)
	}
	return match{access: AccessRead, active: true, desc: desc}, true
}

func (s *Scanner) matchIfSwitch(in ifSwitch) (match, bool) {
	if s.query.Mode != ModeSwitches || in.id != s.query.ID {
		return match{}, false
	}
	return match{
		access: AccessRead,
		active: true,
		desc:   fmt.Sprintf("IF {%s} is %s:", s.switchName(in.id), onOff(in.off)),
	}, true
}

// matchControlVariable classifies a control variable command.
//
// The target range is written unless the only involvement of the query id is
// as the source operand, which is a read. Source and target both being the
// query id is a read-write.
func (s *Scanner) matchControlVariable(in controlVariable) (match, bool) {
	if s.query.Mode != ModeVariables {
		return match{}, false
	}
	q := s.query.ID

	var access Access
	switch op := in.operand.(type) {
	case constantOperand, randomOperand:
		if !in.target.contains(q) {
			return match{}, false
		}
		access = AccessWrite
	case variableOperand:
		self := op.id == q
		written := in.target.contains(q)
		switch {
		case self && written:
			access = AccessReadWrite
		case self:
			access = AccessRead
		case written:
			access = AccessWrite
		default:
			return match{}, false
		}
	case scriptOperand:
		return s.matchScript(op.text)
	default:
		// Game data never references variables or switches.
		return match{}, false
	}

	return match{access: access, active: true, desc: s.describeControlVariable(in)}, true
}

func (s *Scanner) describeControlVariable(in controlVariable) string {
	symbol, ok := operationSymbols[in.operation]
	if !ok {
		s.logger.Warn("control variable operation out of range", "operation", in.operation)
		return "malformed operation"
	}

	target := fmt.Sprintf("{%s}", s.variable(in.target.start))
	if !in.target.single() {
		target = fmt.Sprintf("{%s} .. {%s}", s.variable(in.target.start), s.variable(in.target.end))
	}

	switch op := in.operand.(type) {
	case constantOperand:
		return fmt.Sprintf("%s %s %d", target, symbol, op.value)
	case variableOperand:
		return fmt.Sprintf("%s %s {%s}", target, symbol, s.variable(op.id))
	case randomOperand:
		return fmt.Sprintf("%s %s Random %d .. %d", target, symbol, op.min, op.max)
	default:
		return "unsupported"
	}
}

// matchControlSwitch classifies a control switch command. Switches have no
// read-write case: the command only ever writes.
func (s *Scanner) matchControlSwitch(in controlSwitch) (match, bool) {
	if s.query.Mode != ModeSwitches || !in.target.contains(s.query.ID) {
		return match{}, false
	}

	target := fmt.Sprintf("{%s}", s.switchName(in.target.start))
	if !in.target.single() {
		target = fmt.Sprintf("{%s} .. {%s}", s.switchName(in.target.start), s.switchName(in.target.end))
	}
	return match{
		access: AccessWrite,
		active: true,
		desc:   fmt.Sprintf("%s = %s", target, onOff(in.off)),
	}, true
}

func (s *Scanner) matchScript(text string) (match, bool) {
	access, ok := s.script.Match(text)
	if !ok {
		return match{}, false
	}
	return match{access: access, active: true, desc: text}, true
}

func (s *Scanner) variable(id int64) string {
	return s.names.VariableLabel(id)
}

func (s *Scanner) switchName(id int64) string {
	return s.names.Switch(id)
}

func onOff(off bool) string {
	if off {
		return "OFF"
	}
	return "ON"
}
