package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/rpgscan/internal/names"
)

// Mode selects which identifier space a scan searches.
type Mode int

const (
	ModeVariables Mode = iota
	ModeSwitches
)

func (m Mode) String() string {
	switch m {
	case ModeVariables:
		return "VARIABLES"
	case ModeSwitches:
		return "SWITCHES"
	default:
		return fmt.Sprintf("MODE_%d", int(m))
	}
}

// ParseMode parses "variables" or "switches", in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(s) {
	case "VARIABLES":
		return ModeVariables, nil
	case "SWITCHES":
		return ModeSwitches, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (must be variables or switches)", s)
	}
}

// Query is the single identifier a scan searches for.
type Query struct {
	Mode Mode
	ID   int64
}

// String returns e.g. "variable #005" or "switch #011".
func (q Query) String() string {
	if q.Mode == ModeSwitches {
		return fmt.Sprintf("switch #%03d", q.ID)
	}
	return fmt.Sprintf("variable #%03d", q.ID)
}

// TargetName resolves the display name of the queried identifier.
//
// A variable must exist in the name tables; an unknown switch gets a
// placeholder name.
func TargetName(tables *names.Tables, q Query) (string, error) {
	if q.ID < 0 {
		return "", &QueryError{Code: ErrCodeNegativeID, Query: q}
	}
	switch q.Mode {
	case ModeVariables:
		name, err := tables.Variable(q.ID)
		if err != nil {
			return "", &QueryError{Code: ErrCodeIdentifierNotFound, Query: q, Err: err}
		}
		return name, nil
	case ModeSwitches:
		return tables.Switch(q.ID), nil
	default:
		return "", &QueryError{Code: ErrCodeInvalidMode, Query: q}
	}
}
