// Package locator derives human-readable element names from recorded
// locator strings and rewrites the locators themselves along a fixed
// stability-priority order, so generated page objects bind to the most
// durable selector the recording can justify.
package locator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/entrhq/scribe/pkg/logging"
)

// Rung is the stability ranking a resolved locator landed on. Lower
// values are more stable.
type Rung int

const (
	// RungStaticID is a locator rewritten onto a stable element id.
	RungStaticID Rung = iota + 1
	// RungRelativeXPath is a pass-through relative XPath.
	RungRelativeXPath
	// RungAbsoluteXPath is a pass-through absolute XPath.
	RungAbsoluteXPath
	// RungAttribute is a rewrite onto a label, name, placeholder, or
	// text attribute.
	RungAttribute
	// RungClass is a rewrite onto a class-name containment match.
	RungClass
	// RungRawCSS is the lowest-confidence pass-through fallback.
	RungRawCSS
)

func (r Rung) String() string {
	switch r {
	case RungStaticID:
		return "static-id"
	case RungRelativeXPath:
		return "relative-xpath"
	case RungAbsoluteXPath:
		return "absolute-xpath"
	case RungAttribute:
		return "attribute"
	case RungClass:
		return "class"
	case RungRawCSS:
		return "raw-css"
	}
	return "unknown"
}

// Resolution is the outcome of resolving one raw locator.
type Resolution struct {
	Raw      string
	Locator  string
	Name     string
	Rung     Rung
	Warnings []string
}

// Resolver rewrites raw locators and derives readable names. Resolution
// is memoized per resolver, so resolving the same raw locator twice in
// one run yields byte-identical results.
type Resolver struct {
	log    *logging.Logger
	labels map[string]string
	cache  map[string]Resolution
}

// NewResolver creates a resolver. labels is the label-text to element-id
// mapping table used to upgrade label shorthands to static-id locators;
// it may be nil.
func NewResolver(labels map[string]string) *Resolver {
	log, _ := logging.NewLogger("resolver")
	if labels == nil {
		labels = map[string]string{}
	}
	return &Resolver{
		log:    log,
		labels: labels,
		cache:  map[string]Resolution{},
	}
}

// id extraction is selector-format-agnostic: a CSS #id, an XPath
// [@id='..'] predicate, or an attribute-selector [id='..'] all count,
// wherever they appear in the locator.
var idForms = []*regexp.Regexp{
	regexp.MustCompile(`#([A-Za-z][\w.:-]*)`),
	regexp.MustCompile(`\[@id\s*=\s*['"]([^'"]+)['"]\]`),
	regexp.MustCompile(`\[id\s*=\s*['"]([^'"]+)['"]\]`),
	regexp.MustCompile(`\bid\s*=\s*"([^"]+)"`),
}

// genericTags are common container elements that match far too many
// nodes when used as a bare tag selector.
var genericTags = map[string]bool{
	"div": true, "span": true, "a": true, "p": true, "li": true,
	"ul": true, "ol": true, "td": true, "tr": true, "table": true,
	"section": true, "i": true, "b": true,
}

// Resolve rewrites a raw locator to the highest stability rung it can
// justify and derives its readable name. Resolution never fails: the
// worst case is the original locator passed through unchanged with a
// logged warning.
func (r *Resolver) Resolve(raw string) Resolution {
	if cached, ok := r.cache[raw]; ok {
		return cached
	}

	res := r.resolve(raw)
	res.Raw = raw
	res.Name = DeriveName(raw)

	for _, w := range res.Warnings {
		r.log.Warnf("locator %q: %s", raw, w)
	}

	r.cache[raw] = res
	return res
}

func (r *Resolver) resolve(raw string) Resolution {
	var warnings []string

	// Rung 1: any extractable static id wins, regardless of the
	// original selector format. Dynamic ids are excluded and the
	// locator falls through to the lower rungs.
	if id := extractID(raw); id != "" {
		if !IsDynamicID(id) {
			return Resolution{Locator: idUnionXPath(id), Rung: RungStaticID, Warnings: warnings}
		}
		warnings = append(warnings, fmt.Sprintf("id %q looks dynamically generated, not promoting to static-id locator", id))
	}

	// Rungs 2 and 3: XPath input passes through unchanged.
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "(//") {
		return Resolution{Locator: raw, Rung: RungRelativeXPath, Warnings: warnings}
	}
	if strings.HasPrefix(raw, "/") {
		return Resolution{Locator: raw, Rung: RungAbsoluteXPath, Warnings: warnings}
	}

	// role= shorthands are a selector engine of their own; the name
	// probe below must not capture their [name='..'] clause.
	if strings.HasPrefix(raw, "role=") {
		return Resolution{Locator: raw, Rung: RungRawCSS, Warnings: warnings}
	}

	// Rung 4: label, name, placeholder, and text forms.
	if payload, ok := strings.CutPrefix(raw, "label="); ok {
		if id, mapped := r.labels[payload]; mapped {
			return Resolution{Locator: idUnionXPath(id), Rung: RungStaticID, Warnings: warnings}
		}
		warnings = append(warnings, fmt.Sprintf("label %q has no id mapping, using label-relative locator", payload))
		return Resolution{Locator: labelXPath(payload), Rung: RungAttribute, Warnings: warnings}
	}
	if name := attrValue(raw, "name"); name != "" {
		return Resolution{Locator: nameUnionXPath(name), Rung: RungAttribute, Warnings: warnings}
	}
	if payload, ok := strings.CutPrefix(raw, "placeholder="); ok {
		return Resolution{Locator: placeholderXPath(payload), Rung: RungAttribute, Warnings: warnings}
	}
	if ph := attrValue(raw, "placeholder"); ph != "" {
		return Resolution{Locator: placeholderXPath(ph), Rung: RungAttribute, Warnings: warnings}
	}
	if payload, ok := strings.CutPrefix(raw, "text="); ok {
		return Resolution{Locator: textUnionXPath(payload), Rung: RungAttribute, Warnings: warnings}
	}

	// Rung 5: class name, first token only.
	if cls := firstClass(raw); cls != "" {
		return Resolution{Locator: fmt.Sprintf("//*[contains(@class, '%s')]", cls), Rung: RungClass, Warnings: warnings}
	}

	// Overly-generic bare tag selectors get a visibility constraint so
	// they are less likely to match several elements at runtime. Best
	// effort only.
	if genericTags[strings.ToLower(raw)] {
		warnings = append(warnings, fmt.Sprintf("bare %q selector is overly generic, constraining to visible elements", raw))
		return Resolution{Locator: raw + " >> visible=true", Rung: RungRawCSS, Warnings: warnings}
	}

	// Rung 6: raw CSS pass-through.
	warnings = append(warnings, "no stability rewrite applied, passing raw selector through")
	return Resolution{Locator: raw, Rung: RungRawCSS, Warnings: warnings}
}

// extractID returns the first id embedded anywhere in the locator, or "".
func extractID(raw string) string {
	for _, form := range idForms {
		if m := form.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}
	return ""
}

// attrValue extracts a attr='value' / [attr="value"] / @attr='value'
// payload from a non-shorthand locator, or "".
func attrValue(raw, attr string) string {
	re := regexp.MustCompile(`(?:^|\[|@|\s)` + attr + `\s*=\s*['"]([^'"]+)['"]`)
	if m := re.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if payload, ok := strings.CutPrefix(raw, attr+"="); ok {
		return payload
	}
	return ""
}

// firstClass returns the first class token from a .class selector or a
// class="..." attribute, or "".
func firstClass(raw string) string {
	if m := regexp.MustCompile(`^\.([A-Za-z][\w-]*)`).FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := regexp.MustCompile(`\bclass\s*=\s*['"]([^'"]+)['"]`).FindStringSubmatch(raw); m != nil {
		return strings.Fields(m[1])[0]
	}
	return ""
}

// idUnionXPath is the rung-1 rewrite: a multi-tag union on a stable id.
// The explicit form tags keep the match cheap on the common cases while
// the final any-element arm keeps it complete.
func idUnionXPath(id string) string {
	return fmt.Sprintf(
		"//input[@id='%[1]s'] | //button[@id='%[1]s'] | //textarea[@id='%[1]s'] | //select[@id='%[1]s'] | //*[@id='%[1]s']",
		id)
}

func nameUnionXPath(name string) string {
	return fmt.Sprintf(
		"//input[@name='%[1]s'] | //select[@name='%[1]s'] | //textarea[@name='%[1]s'] | //*[@name='%[1]s']",
		name)
}

func placeholderXPath(placeholder string) string {
	return fmt.Sprintf("//input[@placeholder='%[1]s'] | //textarea[@placeholder='%[1]s']", placeholder)
}

func textUnionXPath(text string) string {
	return fmt.Sprintf(
		"//button[normalize-space()='%[1]s'] | //a[normalize-space()='%[1]s'] | //*[normalize-space(text())='%[1]s']",
		text)
}

// labelXPath binds a form control through its label text when no id
// mapping exists for the label.
func labelXPath(label string) string {
	return fmt.Sprintf(
		"//label[normalize-space()='%[1]s']/following::input[1] | //label[normalize-space()='%[1]s']/following::textarea[1] | //label[normalize-space()='%[1]s']/following::select[1]",
		label)
}
