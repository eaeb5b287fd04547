package generator

import (
	"fmt"
	"strings"

	"github.com/entrhq/scribe/pkg/recording"
)

// emitFeature renders the Gherkin feature file: a Given navigation
// opener, then one step per action in original order with duplicate
// phrases skipped. The first click is classified When, every other step
// And. Scenario Outline is used exactly when the run collected
// parameterized (Fill/Select) columns; a plain Scenario otherwise.
func (g *Generator) emitFeature(feature string, actions []emitAction, session *emitSession) string {
	var b strings.Builder

	display := spacedName(feature)
	navigate := fmt.Sprintf("the user navigates to the %s page", feature)

	b.WriteString(fmt.Sprintf("Feature: %s\n", display))
	b.WriteString(fmt.Sprintf("  Recorded interactions for the %s page.\n\n", display))

	keyword := "Scenario"
	if len(session.params) > 0 {
		keyword = "Scenario Outline"
	}
	b.WriteString(fmt.Sprintf("  %s: %s flow\n", keyword, display))

	b.WriteString(fmt.Sprintf("    Given %s\n", navigate))
	session.steps[navigate] = true

	whenUsed := false
	for _, a := range actions {
		if a.StepText == "" || session.steps[a.StepText] {
			continue
		}
		session.steps[a.StepText] = true

		prefix := "And"
		if a.Kind == recording.Click && !whenUsed {
			prefix = "When"
			whenUsed = true
		}
		b.WriteString(fmt.Sprintf("    %s %s\n", prefix, a.StepText))
	}

	if len(session.params) > 0 {
		b.WriteString("\n    Examples:\n")

		var columns, values []string
		for _, p := range session.params {
			columns = append(columns, p.Column)
			values = append(values, escapeTableCell(p.Value))
		}
		b.WriteString(fmt.Sprintf("      | %s |\n", strings.Join(columns, " | ")))
		b.WriteString(fmt.Sprintf("      | %s |\n", strings.Join(values, " | ")))
	}

	return b.String()
}

// escapeTableCell makes a recorded value safe inside a Gherkin table
// row. Pipes would split the cell and newlines would break the row, so
// both are escaped the way Gherkin parsers expect.
func escapeTableCell(v string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"|", `\|`,
		"\n", `\n`,
		"\r", "",
	)
	return r.Replace(v)
}
