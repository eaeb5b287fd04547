// Package generator turns a resolved action sequence into the three
// coupled test artifacts: a Go page-object source file, a Gherkin feature
// file, and a godog step-definition source file. Emission is a single
// deterministic forward pass; the only feedback is a final reconciliation
// that synthesizes pending stubs for feature steps missing a definition.
package generator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/entrhq/scribe/pkg/locator"
	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/recording"
)

// ErrInvalidArtifact indicates a generated artifact failed its structural
// sanity check. The artifact is not written.
var ErrInvalidArtifact = errors.New("generated artifact failed validation")

// Options configures one generation run.
type Options struct {
	// FeatureName names the feature; it is sanitized to an
	// identifier-safe form before use.
	FeatureName string

	// PageURL is the page the generated navigation method opens.
	PageURL string

	// OutputDir is the root the three artifacts are written under
	// (pages/, features/, steps/).
	OutputDir string

	// PagesImport is the import path consumers use for the generated
	// pages package, referenced by the generated step definitions.
	PagesImport string

	// ReuseLogin enables the canonical-login substitution when the
	// recording contains a guarded login flow and a login-capable page
	// object already exists in the output directory.
	ReuseLogin bool
}

// ArtifactSet is the three coupled outputs for one feature.
type ArtifactSet struct {
	FeatureName     string
	PageObject      string
	Feature         string
	StepDefinitions string
}

// Generator runs the emission stages over an action sequence.
type Generator struct {
	log      *logging.Logger
	resolver *locator.Resolver
	opts     Options
}

// New creates a generator. The resolver carries the label mapping table
// and memoizes resolutions for the lifetime of the run.
func New(resolver *locator.Resolver, opts Options) *Generator {
	log, _ := logging.NewLogger("generator")
	if opts.PagesImport == "" {
		opts.PagesImport = "github.com/entrhq/scribe/generated/pages"
	}
	return &Generator{
		log:      log,
		resolver: resolver,
		opts:     opts,
	}
}

// emitAction pairs a recorded action with emission-only state. Canonical
// login actions are synthesized by the reuse substitution and bind to the
// shared login runtime instead of the generated page object.
type emitAction struct {
	recording.Action
	canonicalLogin bool

	// newConstant and newMethod mark the action that first minted its
	// constant or method; later duplicates render nothing.
	newConstant bool
	newMethod   bool
}

// Generate resolves, names, and emits the artifact set for an action
// sequence. The input order is preserved throughout; the emission session
// owns every seen-set so duplicate locators, constants, methods, and step
// phrases collapse onto their first occurrence.
func (g *Generator) Generate(actions []recording.Action) (*ArtifactSet, error) {
	if len(actions) == 0 {
		return nil, fmt.Errorf("no actions to generate from")
	}

	feature := sanitizeFeatureName(g.opts.FeatureName)
	session := newEmitSession()

	emitActions := g.prepare(actions, session)
	g.assignNames(feature, emitActions, session)

	pageObject := g.emitPageObject(feature, emitActions, session)
	featureFile := g.emitFeature(feature, emitActions, session)
	stepDefs := g.emitStepDefs(feature, emitActions, session, nil)

	// Reconciliation: every feature phrase must have exactly one
	// definition. Gaps become pending stubs.
	stepDefs = g.reconcile(feature, featureFile, stepDefs, emitActions, session)

	set := &ArtifactSet{
		FeatureName:     feature,
		PageObject:      pageObject,
		Feature:         featureFile,
		StepDefinitions: stepDefs,
	}

	if err := g.validate(set); err != nil {
		return nil, err
	}
	return set, nil
}

// prepare resolves names and locators for every action, applies the
// login-reuse substitution when enabled, and assigns constant and method
// names through the shared disambiguation rules.
func (g *Generator) prepare(actions []recording.Action, session *emitSession) []emitAction {
	resolved := make([]emitAction, 0, len(actions))
	for _, a := range actions {
		ea := emitAction{Action: a}
		if a.Kind != recording.Navigate && a.RawLocator != "" {
			res := g.resolver.Resolve(a.RawLocator)
			ea.ResolvedLocator = res.Locator
			ea.ReadableName = res.Name
		}
		resolved = append(resolved, ea)
	}

	if g.opts.ReuseLogin {
		resolved = g.applyLoginReuse(resolved, session)
	}
	return resolved
}

// sanitizeFeatureName reduces a feature name to a PascalCase identifier.
// Names that do not start with a letter are prefixed so the result is
// always usable as a Go identifier and a file stem.
func sanitizeFeatureName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	words := strings.Fields(b.String())
	var out strings.Builder
	for _, w := range words {
		rs := []rune(w)
		out.WriteRune(unicode.ToUpper(rs[0]))
		out.WriteString(string(rs[1:]))
	}
	result := out.String()
	if result == "" {
		return "Recorded"
	}
	if first, _ := utf8.DecodeRuneInString(result); !unicode.IsLetter(first) {
		result = "Feature" + result
	}
	return result
}

// spacedName splits a PascalCase readable name into space-separated words
// for step phrases: "SignIn" becomes "Sign In".
func spacedName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(name[i-1])
			if !unicode.IsUpper(prev) && prev != ' ' {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lowerFirst lowercases the leading rune, producing Examples column names
// from readable names.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
