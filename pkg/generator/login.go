package generator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/entrhq/scribe/pkg/recording"
)

// loginKeywords mark an action as login-related when any of them appears
// in its locator, readable name, or value.
var loginKeywords = []string{"username", "password", "login", "signin", "sign-in"}

// loginPageGlobs match file names of login-capable page objects already
// present in the output directory. Names are lowercased before matching.
var loginPageGlobs = []glob.Glob{
	glob.MustCompile("*login*_page.go"),
	glob.MustCompile("*sign*in*_page.go"),
}

// matchesLoginKeyword reports whether any login keyword appears in the
// action's locator, name, or value.
func matchesLoginKeyword(a emitAction) bool {
	haystack := strings.ToLower(a.RawLocator + " " + a.ReadableName + " " + a.Value)
	for _, kw := range loginKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// hasExistingLoginPage checks the output pages directory for a
// login-capable page object.
func hasExistingLoginPage(outDir string) bool {
	entries, err := os.ReadDir(filepath.Join(outDir, "pages"))
	if err != nil {
		return false
	}
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		for _, g := range loginPageGlobs {
			if g.Match(name) {
				return true
			}
		}
	}
	return false
}

// applyLoginReuse substitutes the canonical configuration-driven login
// steps for a recorded login block, so generated features reuse the
// existing login page object instead of duplicating a hard-coded
// credential flow.
//
// A keyword match alone is not enough: a lone password field on a
// settings page must not be rewritten into a login. Substitution
// requires a password Fill followed by a Click within a three-action
// window, plus a login-capable page object already on disk.
func (g *Generator) applyLoginReuse(actions []emitAction, session *emitSession) []emitAction {
	if !hasExistingLoginPage(g.opts.OutputDir) {
		return actions
	}

	passwordIdx := -1
	for i, a := range actions {
		if a.Kind == recording.Fill && matchesLoginKeyword(a) &&
			strings.Contains(strings.ToLower(a.RawLocator+" "+a.ReadableName), "password") {
			passwordIdx = i
			break
		}
	}
	if passwordIdx < 0 {
		return actions
	}

	clickIdx := -1
	for i := passwordIdx + 1; i < len(actions) && i <= passwordIdx+2; i++ {
		if actions[i].Kind == recording.Click {
			clickIdx = i
			break
		}
	}
	if clickIdx < 0 {
		return actions
	}

	// Pull preceding keyword-matching actions (the username fill) into
	// the substituted block.
	startIdx := passwordIdx
	for startIdx > 0 && actions[startIdx-1].Kind != recording.Navigate && matchesLoginKeyword(actions[startIdx-1]) {
		startIdx--
	}

	g.log.Infof("substituting canonical login steps for recorded actions %d-%d",
		actions[startIdx].Sequence, actions[clickIdx].Sequence)
	session.loginSubstituted = true

	canonical := []emitAction{
		{
			Action: recording.Action{
				Sequence:   actions[startIdx].Sequence,
				Kind:       recording.Fill,
				StepText:   "the user enters the configured username",
				MethodName: "EnterConfiguredUsername",
			},
			canonicalLogin: true,
		},
		{
			Action: recording.Action{
				Sequence:   actions[passwordIdx].Sequence,
				Kind:       recording.Fill,
				StepText:   "the user enters the configured password",
				MethodName: "EnterConfiguredPassword",
			},
			canonicalLogin: true,
		},
		{
			Action: recording.Action{
				Sequence:   actions[clickIdx].Sequence,
				Kind:       recording.Click,
				StepText:   "the user clicks sign in",
				MethodName: "ClickSignIn",
			},
			canonicalLogin: true,
		},
	}

	out := make([]emitAction, 0, len(actions))
	out = append(out, actions[:startIdx]...)
	out = append(out, canonical...)
	out = append(out, actions[clickIdx+1:]...)
	return out
}
