package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/rpg"
)

// testTables names variables 1..20 "Var01".."Var20" with a few overrides, and
// switches 1..20 "Sw01".."Sw20".
func testTables() *names.Tables {
	tables := names.New()
	for id := int64(1); id <= 20; id++ {
		tables.SetVariable(id, fmtName("Var", id))
		tables.SetSwitch(id, fmtName("Sw", id))
	}
	tables.SetVariable(3, "Gold")
	tables.SetVariable(5, "Steps")
	tables.SetSwitch(10, "Door A")
	tables.SetSwitch(11, "Door B")
	tables.SetSwitch(12, "Door C")
	tables.SetMap(1, "Town")
	return tables
}

func fmtName(prefix string, id int64) string {
	return prefix + string(rune('0'+id/10)) + string(rune('0'+id%10))
}

func newScanner(t *testing.T, mode Mode, id int64) *Scanner {
	t.Helper()
	s, err := New(testTables(), Query{Mode: mode, ID: id}, Options{})
	require.NoError(t, err)
	return s
}

// cmd builds a command from plain Go values: int becomes rpg.Int, string
// becomes rpg.String or rpg.Char following the decoder's one-byte rule.
func cmd(code rpg.Code, params ...any) rpg.Command {
	c := rpg.Command{Code: code, Line: 1}
	for _, p := range params {
		switch v := p.(type) {
		case int:
			c.Params = append(c.Params, rpg.Int(v))
		case string:
			if len(v) == 1 {
				c.Params = append(c.Params, rpg.Char(v[0]))
			} else {
				c.Params = append(c.Params, rpg.String(v))
			}
		case bool:
			c.Params = append(c.Params, rpg.Bool(v))
		case float64:
			c.Params = append(c.Params, rpg.Float(v))
		default:
			panic("unsupported param type")
		}
	}
	return c
}
