package rpg

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Param is a sealed interface representing one decoded command parameter.
// Only Int, Float, Bool, Char and String implement this.
type Param interface {
	param() // Sealed - only these types implement it
}

// Int represents an integral JSON number. Signed, so negative constants
// survive decoding.
type Int int64

func (Int) param() {}

// Float represents a JSON number with a fraction or exponent.
type Float float64

func (Float) param() {}

// Bool represents a JSON boolean.
type Bool bool

func (Bool) param() {}

// Char represents a JSON string of byte length exactly one.
type Char byte

func (Char) param() {}

// String represents any other JSON string.
type String string

func (String) param() {}

// DecodeParam decodes a scalar JSON value into the first matching tag in
// priority order: Int, Float, Bool, Char, String.
// Arrays, objects and null match no tag and return false.
func DecodeParam(r gjson.Result) (Param, bool) {
	switch {
	case isInteger(r):
		return Int(r.Int()), true
	case r.Type == gjson.Number:
		return Float(r.Float()), true
	case r.IsBool():
		return Bool(r.Bool()), true
	case r.Type == gjson.String && len(r.Str) == 1:
		return Char(r.Str[0]), true
	case r.Type == gjson.String:
		return String(r.Str), true
	default:
		return nil, false
	}
}

// isInteger reports whether r is a JSON number without fraction or exponent.
func isInteger(r gjson.Result) bool {
	if r.Type != gjson.Number {
		return false
	}
	return !strings.ContainsAny(r.Raw, ".eE")
}

// IntAt returns params[i] as an int64 if it exists and is tagged Int.
func IntAt(params []Param, i int) (int64, bool) {
	if i < 0 || i >= len(params) {
		return 0, false
	}
	v, ok := params[i].(Int)
	return int64(v), ok
}

// StringAt returns params[i] as a string if it exists and is tagged String.
// A Char does not satisfy StringAt.
func StringAt(params []Param, i int) (string, bool) {
	if i < 0 || i >= len(params) {
		return "", false
	}
	v, ok := params[i].(String)
	return string(v), ok
}

// AllInts reports whether every parameter is tagged Int.
func AllInts(params []Param) bool {
	for _, p := range params {
		if _, ok := p.(Int); !ok {
			return false
		}
	}
	return true
}
