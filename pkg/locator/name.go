package locator

import (
	"regexp"
	"strings"
	"unicode"
)

// nameProbe extracts a human-readable payload from one locator shape.
// Probes run in a fixed order; the first non-empty payload wins.
type nameProbe struct {
	name    string
	re      *regexp.Regexp
	extract func(m []string) string
}

var first = func(m []string) string { return m[1] }

// nameProbes is the ordered payload-probe table used by DeriveName.
// Shorthand payloads outrank embedded attributes, which outrank class
// names; the raw selector text is the last resort.
var nameProbes = []nameProbe{
	{"text-shorthand", regexp.MustCompile(`^text=(.+)$`), first},
	{"placeholder-shorthand", regexp.MustCompile(`^placeholder=(.+)$`), first},
	{"label-shorthand", regexp.MustCompile(`^label=(.+)$`), first},
	{"id-selector", regexp.MustCompile(`#([A-Za-z][\w.:-]*)`), func(m []string) string {
		return stripIDSuffix(m[1])
	}},
	{"role-name", regexp.MustCompile(`^role=[\w-]+\[name=['"]([^'"]+)['"]\]`), first},
	{"has-text", regexp.MustCompile(`:has-text\(['"]([^'"]+)['"]\)`), first},
	{"name-attr", regexp.MustCompile(`\bname\s*=\s*['"]?([^'"\]\s]+)`), first},
	{"placeholder-attr", regexp.MustCompile(`\bplaceholder\s*=\s*['"]?([^'"\]]+)`), first},
	{"aria-label", regexp.MustCompile(`\baria-label\s*=\s*['"]?([^'"\]]+)`), first},
	{"title-attr", regexp.MustCompile(`\btitle\s*=\s*['"]?([^'"\]]+)`), first},
	{"value-attr", regexp.MustCompile(`\bvalue\s*=\s*['"]?([^'"\]]+)`), first},
	{"test-id", regexp.MustCompile(`\bdata-test-?id\s*=\s*['"]?([^'"\]]+)`), first},
	{"class-selector", regexp.MustCompile(`\.([A-Za-z][\w-]*)`), first},
}

// idSuffixes are trailing fragments commonly appended to element ids that
// add nothing to a readable name.
var idSuffixes = []string{"-btn", "-button", "-input", "-field", "-link", "_btn", "_input", "_field"}

func stripIDSuffix(id string) string {
	lower := strings.ToLower(id)
	for _, suffix := range idSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return id[:len(id)-len(suffix)]
		}
	}
	return id
}

// trailingWords are element-type words dropped from the end of a cleaned
// payload: "Submit Button" and "Submit" should name the same element.
var trailingWords = map[string]bool{
	"button":   true,
	"input":    true,
	"field":    true,
	"link":     true,
	"checkbox": true,
	"radio":    true,
}

// DeriveName produces the PascalCase readable name for a raw locator.
// The matched payload is cleaned (non-alphanumerics become spaces,
// whitespace collapsed, trailing element-type word dropped) and cased.
// Purely numeric payloads gain a "Number" prefix; when nothing usable
// remains the literal "Element" is returned.
func DeriveName(raw string) string {
	payload := raw
	for _, probe := range nameProbes {
		if m := probe.re.FindStringSubmatch(raw); m != nil {
			if p := probe.extract(m); p != "" {
				payload = p
				break
			}
		}
	}

	name := pascalCase(cleanPayload(payload))
	if name == "" {
		return "Element"
	}
	if isNumeric(name) {
		return "Number" + name
	}
	return name
}

// cleanPayload normalizes a payload to space-separated words.
func cleanPayload(payload string) string {
	var b strings.Builder
	for _, r := range payload {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	if len(words) > 1 && trailingWords[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// pascalCase joins space-separated words with each word capitalized.
func pascalCase(s string) string {
	words := strings.Fields(s)
	var b strings.Builder
	for _, w := range words {
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
