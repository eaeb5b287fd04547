// Package recording parses recorded browser-automation sessions into an
// ordered sequence of typed actions. It understands two recording dialects
// (the modern locator-object style and the legacy direct-call style) plus
// the semantic accessor shorthands (by-role, by-text, by-label,
// by-placeholder), which are normalized into tag-prefixed locators so the
// rest of the pipeline sees a single locator syntax.
package recording

// Kind identifies the type of a recorded interaction.
type Kind string

const (
	// Click is a mouse click on an element.
	Click Kind = "click"
	// Fill types text into an input element.
	Fill Kind = "fill"
	// Select chooses an option from a select element.
	Select Kind = "select"
	// Check toggles a checkbox or radio element.
	Check Kind = "check"
	// Press sends a key press to an element.
	Press Kind = "press"
	// Navigate opens a URL.
	Navigate Kind = "navigate"
)

// Action is one interaction extracted from a recording.
//
// Sequence is assigned in extraction order and is used only to
// disambiguate generated names, never as an execution-ordering guarantee.
// RawLocator is the locator exactly as captured (empty for Navigate);
// Value carries the text/key/URL payload (empty for Click/Check).
//
// The remaining fields are derived by later pipeline stages and cached on
// the action: ResolvedLocator by the locator resolver, ReadableName by
// name derivation, ConstantName/MethodName/StepText by the emitter.
type Action struct {
	Sequence   int
	Kind       Kind
	RawLocator string
	Value      string

	ResolvedLocator string
	ReadableName    string
	ConstantName    string
	MethodName      string
	StepText        string
}

// NeedsValue reports whether this action kind carries a payload argument
// in generated page-object methods.
func (k Kind) NeedsValue() bool {
	return k == Fill || k == Select || k == Press
}
