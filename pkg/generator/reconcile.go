package generator

import (
	"regexp"
	"strings"
)

var (
	stepKeywords = []string{"Given ", "When ", "Then ", "And ", "But "}
	stepCallRe   = regexp.MustCompile("ctx\\.Step\\(`([^`]+)`")
)

// featurePhrases extracts the step phrases referenced by a feature
// source, in order of first appearance.
func featurePhrases(featureSrc string) []string {
	var phrases []string
	seen := map[string]bool{}

	for _, line := range strings.Split(featureSrc, "\n") {
		line = strings.TrimSpace(line)
		for _, kw := range stepKeywords {
			if phrase, ok := strings.CutPrefix(line, kw); ok {
				phrase = strings.TrimSpace(phrase)
				if phrase != "" && !seen[phrase] {
					seen[phrase] = true
					phrases = append(phrases, phrase)
				}
				break
			}
		}
	}
	return phrases
}

// registeredPatterns extracts the step patterns a step-definition source
// registers.
func registeredPatterns(stepSrc string) map[string]bool {
	patterns := map[string]bool{}
	for _, m := range stepCallRe.FindAllStringSubmatch(stepSrc, -1) {
		patterns[m[1]] = true
	}
	return patterns
}

// missingDefinitions diffs the feature's phrases against the definitions'
// patterns and returns every phrase with no covering definition. The
// comparison runs both sides through the same phrase-to-pattern
// transformation, so placeholders and capture groups line up.
func missingDefinitions(featureSrc, stepSrc string) []string {
	patterns := registeredPatterns(stepSrc)

	var missing []string
	for _, phrase := range featurePhrases(featureSrc) {
		if !patterns[phrasePattern(phrase)] {
			missing = append(missing, phrase)
		}
	}
	return missing
}

// reconcile closes the feature/definition gap: any feature phrase without
// a definition gets a synthesized pending stub, guaranteeing that every
// feature step resolves to exactly one step definition.
func (g *Generator) reconcile(feature, featureSrc, stepSrc string, actions []emitAction, session *emitSession) string {
	missing := missingDefinitions(featureSrc, stepSrc)
	if len(missing) == 0 {
		return stepSrc
	}

	g.log.Warnf("feature %s references %d step(s) with no definition, synthesizing stubs", feature, len(missing))
	return g.emitStepDefs(feature, actions, session, missing)
}
