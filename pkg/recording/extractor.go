package recording

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/entrhq/scribe/pkg/logging"
)

// ErrUnreadable indicates the recording file could not be read at all.
// This is the only fatal extraction failure; an empty or unmatched file
// degrades to a single synthetic Navigate action instead.
var ErrUnreadable = errors.New("recording file is not readable")

// linePattern is one entry in the extractor's dispatch table. Patterns are
// evaluated in table order and the first match wins, so the table order is
// the dialect priority: navigate > modern dialect > semantic accessors >
// legacy dialect. Adding a dialect means adding rows, not control flow.
type linePattern struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) (Action, bool)
}

// Extractor scans recording text line by line and produces the ordered
// action sequence the rest of the pipeline consumes.
type Extractor struct {
	log      *logging.Logger
	patterns []linePattern
}

// NewExtractor creates an extractor with the built-in dialect table.
func NewExtractor() *Extractor {
	log, _ := logging.NewLogger("extractor")
	return &Extractor{
		log:      log,
		patterns: dialectTable(),
	}
}

// verbKind maps a recorded call verb to an action kind. uncheck records as
// Check: the generated method toggles, it does not assert state.
func verbKind(verb string) (Kind, bool) {
	switch verb {
	case "click", "dblclick":
		return Click, true
	case "fill", "type":
		return Fill, true
	case "selectOption":
		return Select, true
	case "check", "uncheck":
		return Check, true
	case "press":
		return Press, true
	}
	return "", false
}

// dialectTable builds the ordered pattern table. Capture-group layout is
// private to each row's build func.
func dialectTable() []linePattern {
	verbs := `(click|dblclick|fill|type|selectOption|check|uncheck|press)`
	arg := `\(\s*(?:"([^"]*)")?[^)]*\)`

	return []linePattern{
		{
			name: "navigate",
			re:   regexp.MustCompile(`\.(?:navigate|goto)\(\s*"([^"]*)"`),
			build: func(m []string) (Action, bool) {
				return Action{Kind: Navigate, Value: m[1]}, true
			},
		},
		{
			name: "modern",
			re:   regexp.MustCompile(`\.locator\(\s*"([^"]*)"\s*\)\.` + verbs + arg),
			build: func(m []string) (Action, bool) {
				kind, ok := verbKind(m[2])
				if !ok {
					return Action{}, false
				}
				return Action{Kind: kind, RawLocator: m[1], Value: m[3]}, true
			},
		},
		{
			name: "by-role",
			re: regexp.MustCompile(
				`\.getByRole\(\s*(?:"([^"]*)"|AriaRole\.([A-Z_]+))` +
					`(?:[^)]*?[Nn]ame\s*[:(=]\s*"([^"]*)")?[^)]*\)\.` + verbs + arg),
			build: func(m []string) (Action, bool) {
				kind, ok := verbKind(m[4])
				if !ok {
					return Action{}, false
				}
				role := m[1]
				if role == "" {
					role = strings.ToLower(m[2])
				}
				loc := "role=" + role
				if m[3] != "" {
					loc = fmt.Sprintf("role=%s[name='%s']", role, m[3])
				}
				return Action{Kind: kind, RawLocator: loc, Value: m[5]}, true
			},
		},
		{
			name: "by-text",
			re:   regexp.MustCompile(`\.getByText\(\s*"([^"]*)"\s*[^)]*\)\.` + verbs + arg),
			build: func(m []string) (Action, bool) {
				kind, ok := verbKind(m[2])
				if !ok {
					return Action{}, false
				}
				return Action{Kind: kind, RawLocator: "text=" + m[1], Value: m[3]}, true
			},
		},
		{
			name: "by-label",
			re:   regexp.MustCompile(`\.getByLabel\(\s*"([^"]*)"\s*[^)]*\)\.` + verbs + arg),
			build: func(m []string) (Action, bool) {
				kind, ok := verbKind(m[2])
				if !ok {
					return Action{}, false
				}
				return Action{Kind: kind, RawLocator: "label=" + m[1], Value: m[3]}, true
			},
		},
		{
			name: "by-placeholder",
			re:   regexp.MustCompile(`\.getByPlaceholder\(\s*"([^"]*)"\s*[^)]*\)\.` + verbs + arg),
			build: func(m []string) (Action, bool) {
				kind, ok := verbKind(m[2])
				if !ok {
					return Action{}, false
				}
				return Action{Kind: kind, RawLocator: "placeholder=" + m[1], Value: m[3]}, true
			},
		},
		{
			name: "legacy-two-arg",
			re:   regexp.MustCompile(`\.(fill|type|selectOption|press)\(\s*"([^"]*)"\s*,\s*"([^"]*)"\s*\)`),
			build: func(m []string) (Action, bool) {
				kind, ok := verbKind(m[1])
				if !ok {
					return Action{}, false
				}
				return Action{Kind: kind, RawLocator: m[2], Value: m[3]}, true
			},
		},
		{
			name: "legacy-one-arg",
			re:   regexp.MustCompile(`\.(click|dblclick|check|uncheck)\(\s*"([^"]*)"\s*\)`),
			build: func(m []string) (Action, bool) {
				kind, ok := verbKind(m[1])
				if !ok {
					return Action{}, false
				}
				return Action{Kind: kind, RawLocator: m[2]}, true
			},
		},
	}
}

// ExtractFile reads and extracts a recording from disk. An unreadable file
// is fatal and reported to the caller wrapped in ErrUnreadable.
func (e *Extractor) ExtractFile(path string) ([]Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return e.Extract(string(data)), nil
}

// Extract parses recording text into the ordered action sequence. Lines
// that are blank, comments, or imports are skipped silently; a line that
// matches nothing is skipped with a debug note. If no line produced an
// action the result is a single synthetic Navigate with an empty URL, so
// downstream stages always see at least one action.
func (e *Extractor) Extract(text string) []Action {
	var actions []Action

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if skipLine(line) {
			continue
		}

		matched := false
		for _, p := range e.patterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			action, ok := p.build(m)
			if !ok {
				continue
			}
			action.Sequence = len(actions) + 1
			actions = append(actions, action)
			matched = true
			break
		}

		if !matched {
			e.log.Debugf("no dialect pattern matched line: %s", line)
		}
	}

	if len(actions) == 0 {
		e.log.Warnf("recording contained no recognizable actions, using synthetic navigation")
		actions = append(actions, Action{Sequence: 1, Kind: Navigate})
	}

	return actions
}

// skipLine reports whether a trimmed line is structural noise rather than
// a recorded call.
func skipLine(line string) bool {
	if line == "" || line == "}" || line == "{" || line == ");" {
		return true
	}
	for _, prefix := range []string{"//", "#", "/*", "*", "import ", "package ", "from ", "public ", "@"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
