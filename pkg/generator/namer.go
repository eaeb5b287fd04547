package generator

import (
	"fmt"
	"strings"

	"github.com/entrhq/scribe/pkg/recording"
)

// methodName maps an action kind and readable name to the exported
// page-object method name. The literal name "Value" is never permitted:
// an unresolvable locator used to collapse to that meaningless
// identifier, so it is replaced with a positional fallback instead.
// Uniqueness against the session's method set is resolved with the
// action's sequence number as a suffix.
func (g *Generator) methodName(a emitAction, session *emitSession) string {
	name := a.ReadableName

	if strings.EqualFold(name, "value") {
		g.log.Warnf("readable name %q is not a usable identifier, falling back to positional name", name)
		return disambiguate(fmt.Sprintf("PerformAction%d", a.Sequence), a.Sequence, session.methods)
	}

	var candidate string
	switch a.Kind {
	case recording.Click:
		candidate = "Click" + name
	case recording.Fill:
		candidate = fillMethodName(name)
	case recording.Select:
		candidate = "Select" + name
	case recording.Check:
		candidate = checkMethodName(name)
	case recording.Press:
		candidate = "PressKeyOn" + name
	case recording.Navigate:
		return "NavigateTo"
	default:
		candidate = "PerformAction" + name
	}

	return disambiguate(candidate, a.Sequence, session.methods)
}

// fillMethodName special-cases the common credential and search fields:
// EnterEmail beats EnterEmailAddressInput every time it applies.
func fillMethodName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "search"):
		return "Search" + stripWord(name, "search")
	case strings.Contains(lower, "email"):
		return "EnterEmail"
	case strings.Contains(lower, "password"):
		return "EnterPassword"
	case strings.Contains(lower, "username"):
		return "EnterUsername"
	}
	return "Enter" + name
}

// checkMethodName uses Toggle for names that imply a switch rather than
// a checkbox.
func checkMethodName(name string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "toggle") {
		return "Toggle" + stripWord(name, "toggle")
	}
	if strings.Contains(lower, "switch") {
		return "Toggle" + stripWord(name, "switch")
	}
	return "Check" + name
}

// stripWord removes one case-insensitive occurrence of word from a
// PascalCase name, leaving the remainder.
func stripWord(name, word string) string {
	lower := strings.ToLower(name)
	idx := strings.Index(lower, word)
	if idx < 0 {
		return name
	}
	return name[:idx] + name[idx+len(word):]
}

// disambiguate appends the sequence-derived suffix until the candidate is
// unique within the session, then claims it.
func disambiguate(candidate string, sequence int, seen map[string]bool) string {
	name := candidate
	suffix := sequence
	for seen[name] {
		name = fmt.Sprintf("%s%d", candidate, suffix)
		suffix++
	}
	seen[name] = true
	return name
}
