package generator

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderRe matches a quoted Examples placeholder inside a step
// phrase after regexp.QuoteMeta has been applied.
var placeholderRe = regexp.MustCompile(`"<[^>]+>"`)

// phrasePattern converts a step phrase into the anchored regular
// expression registered with godog. Placeholders become capture groups;
// everything else is matched literally.
func phrasePattern(phrase string) string {
	quoted := regexp.QuoteMeta(phrase)
	quoted = placeholderRe.ReplaceAllString(quoted, `"([^"]*)"`)
	return "^" + quoted + "$"
}

// emitStepDefs renders the godog step-definition source: one registration
// per unique step phrase, each delegating to the page-object method the
// phrase was generated from. stubs carries phrases that need synthesized
// pending definitions; it is empty on the first pass and populated by the
// reconciliation re-render when the feature references phrases no
// definition covers.
func (g *Generator) emitStepDefs(feature string, actions []emitAction, session *emitSession, stubs []string) string {
	var b strings.Builder

	typeName := feature + "Page"

	b.WriteString("// Code generated by scribe. DO NOT EDIT.\n\n")
	b.WriteString("package steps\n\n")
	b.WriteString("import (\n")
	if len(stubs) > 0 {
		b.WriteString("\t\"log\"\n\n")
	}
	b.WriteString("\t\"github.com/cucumber/godog\"\n\n")
	b.WriteString("\tscribepages \"github.com/entrhq/scribe/pkg/pages\"\n")
	b.WriteString(fmt.Sprintf("\tpages %q\n", g.opts.PagesImport))
	b.WriteString(")\n\n")

	b.WriteString(fmt.Sprintf("// Initialize%[1]sScenario registers the %[1]s feature's step definitions\n", feature))
	b.WriteString("// against a browser session.\n")
	b.WriteString(fmt.Sprintf("func Initialize%sScenario(ctx *godog.ScenarioContext, session *scribepages.Session) {\n", feature))
	b.WriteString(fmt.Sprintf("\tpage := pages.New%s(session)\n", typeName))
	if session.loginSubstituted {
		b.WriteString("\tlogin := scribepages.NewLoginActions(session)\n")
	}
	b.WriteString("\n")

	navigate := fmt.Sprintf("the user navigates to the %s page", feature)
	b.WriteString(fmt.Sprintf("\tctx.Step(`%s`, page.NavigateTo)\n", phrasePattern(navigate)))

	seen := map[string]bool{navigate: true}
	for _, a := range actions {
		if a.StepText == "" || seen[a.StepText] {
			continue
		}
		seen[a.StepText] = true

		target := "page." + a.MethodName
		if a.canonicalLogin {
			target = "login." + a.MethodName
		}
		b.WriteString(fmt.Sprintf("\tctx.Step(`%s`, %s)\n", phrasePattern(a.StepText), target))
	}

	for _, phrase := range stubs {
		b.WriteString("\n\t// Synthesized: the feature references this step but no definition\n")
		b.WriteString("\t// covered it.\n")
		b.WriteString(fmt.Sprintf("\tctx.Step(`%s`, func() error {\n", phrasePattern(phrase)))
		b.WriteString(fmt.Sprintf("\t\tlog.Printf(\"pending step definition: %%s\", %q)\n", phrase))
		b.WriteString("\t\treturn godog.ErrPending\n")
		b.WriteString("\t})\n")
	}

	b.WriteString("}\n")
	return b.String()
}
