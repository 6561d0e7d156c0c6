package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rpgscan/internal/rpg"
)

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name string
		cmd  rpg.Command
		want instruction
	}{
		{
			name: "if script",
			cmd:  cmd(rpg.CodeIfStatement, 12, "$gameVariables.value(3) > 0"),
			want: ifScript{text: "$gameVariables.value(3) > 0"},
		},
		{
			name: "if variable constant",
			cmd:  cmd(rpg.CodeIfStatement, 1, 3, 0, 10, 1),
			want: ifVariable{id: 3, compare: compareConstant, comparand: 10, operator: 1},
		},
		{
			name: "if variable variable",
			cmd:  cmd(rpg.CodeIfStatement, 1, 3, 1, 3, 0),
			want: ifVariable{id: 3, compare: compareVariable, comparand: 3, operator: 0},
		},
		{
			name: "if switch off",
			cmd:  cmd(rpg.CodeIfStatement, 0, 11, 1),
			want: ifSwitch{id: 11, off: true},
		},
		{
			name: "control variable constant",
			cmd:  cmd(rpg.CodeControlVariable, 3, 3, 0, 0, 7),
			want: controlVariable{target: idRange{3, 3}, operation: 0, operand: constantOperand{value: 7}},
		},
		{
			name: "control variable variable",
			cmd:  cmd(rpg.CodeControlVariable, 1, 4, 1, 1, 9),
			want: controlVariable{target: idRange{1, 4}, operation: 1, operand: variableOperand{id: 9}},
		},
		{
			name: "control variable random",
			cmd:  cmd(rpg.CodeControlVariable, 3, 3, 0, 2, 1, 6),
			want: controlVariable{target: idRange{3, 3}, operation: 0, operand: randomOperand{min: 1, max: 6}},
		},
		{
			name: "control variable game data",
			cmd:  cmd(rpg.CodeControlVariable, 3, 3, 0, 3, 0, 1, 0),
			want: controlVariable{target: idRange{3, 3}, operation: 0, operand: gameDataOperand{}},
		},
		{
			name: "control variable script",
			cmd:  cmd(rpg.CodeControlVariable, 3, 3, 0, 4, "Math.max(1, 2)"),
			want: controlVariable{target: idRange{3, 3}, operation: 0, operand: scriptOperand{text: "Math.max(1, 2)"}},
		},
		{
			name: "control switch",
			cmd:  cmd(rpg.CodeControlSwitch, 10, 12, 0),
			want: controlSwitch{target: idRange{10, 12}, off: false},
		},
		{
			name: "script single line",
			cmd:  cmd(rpg.CodeScriptSingleLine, "$gameSwitches.setValue(11, true);"),
			want: scriptLine{text: "$gameSwitches.setValue(11, true);"},
		},
		{
			name: "script multi line",
			cmd:  cmd(rpg.CodeScriptMultiLine, "foo();"),
			want: scriptLine{text: "foo();"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeInstruction(tt.cmd))
		})
	}
}

func TestDecodeInstruction_Inert(t *testing.T) {
	tests := []struct {
		name string
		cmd  rpg.Command
	}{
		{"unknown opcode", cmd(rpg.Code(101), "Actor1", 0, 0, 2)},
		{"if without params", cmd(rpg.CodeIfStatement)},
		{"if tag not an int", cmd(rpg.CodeIfStatement, "ab", 3)},
		{"if unknown tag", cmd(rpg.CodeIfStatement, 4, 1, 0)},
		{"if script wrong arity", cmd(rpg.CodeIfStatement, 12, "a()", "b()")},
		{"if script one char text", cmd(rpg.CodeIfStatement, 12, "x")},
		{"if variable short", cmd(rpg.CodeIfStatement, 1, 3, 0, 10)},
		{"if variable long", cmd(rpg.CodeIfStatement, 1, 3, 0, 10, 1, 0)},
		{"if variable bad compare kind", cmd(rpg.CodeIfStatement, 1, 3, 2, 10, 1)},
		{"if variable float comparand", cmd(rpg.CodeIfStatement, 1, 3, 0, 1.5, 1)},
		{"if switch long", cmd(rpg.CodeIfStatement, 0, 11, 0, 0)},
		{"control variable short", cmd(rpg.CodeControlVariable, 3, 3, 0)},
		{"control variable constant with 6 params", cmd(rpg.CodeControlVariable, 3, 3, 0, 0, 7, 8)},
		{"control variable random with 5 params", cmd(rpg.CodeControlVariable, 3, 3, 0, 2, 1)},
		{"control variable unknown operand", cmd(rpg.CodeControlVariable, 3, 3, 0, 9, 1)},
		{"control variable string start", cmd(rpg.CodeControlVariable, "ab", 3, 0, 0, 7)},
		{"control variable script not a string", cmd(rpg.CodeControlVariable, 3, 3, 0, 4, 5)},
		{"control switch short", cmd(rpg.CodeControlSwitch, 10, 12)},
		{"control switch bool value", cmd(rpg.CodeControlSwitch, 10, 12, true)},
		{"script no params", cmd(rpg.CodeScriptSingleLine)},
		{"script two params", cmd(rpg.CodeScriptSingleLine, "a()", "b()")},
		{"script single char", cmd(rpg.CodeScriptSingleLine, "x")},
		{"script not a string", cmd(rpg.CodeScriptMultiLine, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, decodeInstruction(tt.cmd))
		})
	}
}

func TestIDRange(t *testing.T) {
	r := idRange{start: 10, end: 12}
	assert.False(t, r.contains(9))
	assert.True(t, r.contains(10))
	assert.True(t, r.contains(11))
	assert.True(t, r.contains(12))
	assert.False(t, r.contains(13))
	assert.False(t, r.single())

	single := idRange{start: 5, end: 5}
	assert.True(t, single.contains(5))
	assert.True(t, single.single())
}

func TestParseMode(t *testing.T) {
	for _, in := range []string{"variables", "VARIABLES", "Variables"} {
		m, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, ModeVariables, m)
	}

	m, err := ParseMode("switches")
	require.NoError(t, err)
	assert.Equal(t, ModeSwitches, m)

	_, err = ParseMode("both")
	assert.Error(t, err)
}
