package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/entrhq/scribe/pkg/recording"
)

// assignNames walks the action sequence once, assigning locator
// constants, method names, and step phrases through the session's
// seen-sets. A repeated resolved locator reuses the earlier constant; a
// repeated (kind, constant) pair reuses the earlier method and step
// phrase, so the page object exposes exactly one method per pair.
func (g *Generator) assignNames(feature string, actions []emitAction, session *emitSession) {
	for i := range actions {
		a := &actions[i]

		if a.canonicalLogin {
			continue
		}

		if a.Kind == recording.Navigate {
			a.MethodName = "NavigateTo"
			a.StepText = fmt.Sprintf("the user navigates to the %s page", feature)
			continue
		}

		// Locator constant, deduplicated on the resolved locator.
		if constant, ok := session.locatorConstants[a.ResolvedLocator]; ok {
			a.ConstantName = constant
		} else {
			a.ConstantName = disambiguate(upperSnake(a.ReadableName), a.Sequence, session.constants)
			session.locatorConstants[a.ResolvedLocator] = a.ConstantName
			a.newConstant = true
		}

		// Method, deduplicated on (kind, constant).
		key := string(a.Kind) + "|" + a.ConstantName
		if method, ok := session.methodByKey[key]; ok {
			a.MethodName = method
		} else {
			a.MethodName = g.methodName(*a, session)
			session.methodByKey[key] = a.MethodName
			a.newMethod = true
		}

		a.StepText = g.stepText(a, session)
	}
}

// stepText builds the Gherkin phrase for an action. Parameterized kinds
// (Fill, Select) register an Examples column and reference it with a
// placeholder; everything else embeds the readable name directly.
func (g *Generator) stepText(a *emitAction, session *emitSession) string {
	display := spacedName(a.ReadableName)

	switch a.Kind {
	case recording.Click:
		return fmt.Sprintf("the user clicks %s", display)
	case recording.Fill:
		column := lowerFirst(a.ReadableName)
		if a.newMethod {
			column = session.addParam(column, a.Value, a.Sequence)
		}
		return fmt.Sprintf("the user enters \"<%s>\" into %s", column, display)
	case recording.Select:
		column := lowerFirst(a.ReadableName)
		if a.newMethod {
			column = session.addParam(column, a.Value, a.Sequence)
		}
		return fmt.Sprintf("the user selects \"<%s>\" from %s", column, display)
	case recording.Check:
		return fmt.Sprintf("the user checks %s", display)
	case recording.Press:
		return fmt.Sprintf("the user presses %s on %s", a.Value, display)
	}
	return fmt.Sprintf("the user interacts with %s", display)
}

// emitPageObject renders the Go page-object source: one locator constant
// per unique resolved locator, one navigation method, and one action
// method per unique method name. Method body shape follows the action
// kind: no argument for Click/Check/Press, one string argument for Fill
// and Select.
func (g *Generator) emitPageObject(feature string, actions []emitAction, session *emitSession) string {
	var b strings.Builder

	typeName := feature + "Page"

	b.WriteString("// Code generated by scribe. DO NOT EDIT.\n\n")
	b.WriteString("package pages\n\n")
	b.WriteString("import (\n")
	b.WriteString("\tscribepages \"github.com/entrhq/scribe/pkg/pages\"\n")
	b.WriteString(")\n\n")

	b.WriteString(fmt.Sprintf("// %s drives the %s page.\n", typeName, feature))
	b.WriteString(fmt.Sprintf("type %s struct {\n\t*scribepages.BasePage\n}\n\n", typeName))

	b.WriteString(fmt.Sprintf("// New%[1]s binds the page object to a browser session.\n", typeName))
	b.WriteString(fmt.Sprintf("func New%[1]s(session *scribepages.Session) *%[1]s {\n", typeName))
	b.WriteString(fmt.Sprintf("\treturn &%s{BasePage: scribepages.NewBasePage(session)}\n}\n\n", typeName))

	b.WriteString(fmt.Sprintf("// %sURL is the page the object navigates to.\n", typeName))
	b.WriteString(fmt.Sprintf("const %sURL = %q\n\n", typeName, g.opts.PageURL))

	// Locator constants, in first-use order.
	var constants []emitAction
	for _, a := range actions {
		if a.newConstant {
			constants = append(constants, a)
		}
	}
	if len(constants) > 0 {
		b.WriteString("// Element locators.\n")
		b.WriteString("const (\n")
		for _, a := range constants {
			b.WriteString(fmt.Sprintf("\t%s = %q\n", a.ConstantName, a.ResolvedLocator))
		}
		b.WriteString(")\n\n")
	}

	// Navigation is emitted exactly once, however many Navigate actions
	// were recorded.
	b.WriteString(fmt.Sprintf("// NavigateTo opens the %s page.\n", feature))
	b.WriteString(fmt.Sprintf("func (p *%s) NavigateTo() error {\n", typeName))
	b.WriteString(fmt.Sprintf("\treturn p.Open(%sURL)\n}\n", typeName))

	for _, a := range actions {
		if !a.newMethod || a.Kind == recording.Navigate || a.canonicalLogin {
			continue
		}
		b.WriteString("\n")
		b.WriteString(g.renderMethod(typeName, a))
	}

	return b.String()
}

// renderMethod renders one page-object action method.
func (g *Generator) renderMethod(typeName string, a emitAction) string {
	var b strings.Builder
	display := spacedName(a.ReadableName)

	switch a.Kind {
	case recording.Click:
		b.WriteString(fmt.Sprintf("// %s clicks the %s element.\n", a.MethodName, display))
		b.WriteString(fmt.Sprintf("func (p *%s) %s() error {\n", typeName, a.MethodName))
		b.WriteString(fmt.Sprintf("\treturn p.Click(%s)\n}\n", a.ConstantName))
	case recording.Fill:
		b.WriteString(fmt.Sprintf("// %s fills the %s element.\n", a.MethodName, display))
		b.WriteString(fmt.Sprintf("func (p *%s) %s(value string) error {\n", typeName, a.MethodName))
		b.WriteString(fmt.Sprintf("\treturn p.Fill(%s, value)\n}\n", a.ConstantName))
	case recording.Select:
		b.WriteString(fmt.Sprintf("// %s selects an option from the %s element.\n", a.MethodName, display))
		b.WriteString(fmt.Sprintf("func (p *%s) %s(value string) error {\n", typeName, a.MethodName))
		b.WriteString(fmt.Sprintf("\treturn p.Select(%s, value)\n}\n", a.ConstantName))
	case recording.Check:
		b.WriteString(fmt.Sprintf("// %s toggles the %s element.\n", a.MethodName, display))
		b.WriteString(fmt.Sprintf("func (p *%s) %s() error {\n", typeName, a.MethodName))
		b.WriteString(fmt.Sprintf("\treturn p.Check(%s)\n}\n", a.ConstantName))
	case recording.Press:
		b.WriteString(fmt.Sprintf("// %s presses %s on the %s element.\n", a.MethodName, a.Value, display))
		b.WriteString(fmt.Sprintf("func (p *%s) %s() error {\n", typeName, a.MethodName))
		b.WriteString(fmt.Sprintf("\treturn p.Press(%s, %q)\n}\n", a.ConstantName, a.Value))
	}

	return b.String()
}

// upperSnake converts a PascalCase readable name to the UPPER_SNAKE_CASE
// constant identifier convention used for locator constants.
func upperSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(rune(name[i-1])) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "ELEMENT"
	}
	return b.String()
}
