package engine

import (
	"fmt"
	"strings"
)

// ScriptMatcher finds the read or write call pattern of one identifier in a
// line of free script text.
type ScriptMatcher interface {
	Match(text string) (Access, bool)
}

// callPatternMatcher looks for the engine's accessor and mutator calls, e.g.
// "$gameVariables.value(5)" and "$gameVariables.setValue(5, ...)".
type callPatternMatcher struct {
	read  string
	write string
}

// NewScriptMatcher returns the call pattern matcher for q.
func NewScriptMatcher(q Query) ScriptMatcher {
	global := "$gameVariables"
	if q.Mode == ModeSwitches {
		global = "$gameSwitches"
	}
	return &callPatternMatcher{
		read:  fmt.Sprintf("%s.value(%d)", global, q.ID),
		write: fmt.Sprintf("%s.setValue(%d", global, q.ID),
	}
}

// Match checks the read accessor first, then the write mutator.
func (m *callPatternMatcher) Match(text string) (Access, bool) {
	if strings.Contains(text, m.read) {
		return AccessRead, true
	}
	if containsCall(text, m.write) {
		return AccessWrite, true
	}
	return 0, false
}

// containsCall reports whether text contains prefix not directly followed by
// another digit, so "setValue(5" does not hit "setValue(55".
func containsCall(text, prefix string) bool {
	for {
		i := strings.Index(text, prefix)
		if i < 0 {
			return false
		}
		rest := text[i+len(prefix):]
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return true
		}
		text = rest
	}
}
