package locator

import "regexp"

// Dynamic element identifiers are regenerated per session or build
// (GUIDs, timestamps, random hashes) and must never be promoted to
// static-id locators.
var (
	guidRe         = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	alnumRunRe     = regexp.MustCompile(`^[A-Za-z0-9]{20,}$`)
	millisRunRe    = regexp.MustCompile(`[0-9]{13,}`)
	trailingDigits = regexp.MustCompile(`[_-][0-9]{8,}$`)
)

// IsDynamicID reports whether an element id looks machine-generated.
// Flags: GUID shape, a 20+ character unbroken alphanumeric run, an
// embedded 13+ digit run (millisecond timestamp), or a trailing
// underscore/hyphen followed by 8+ digits.
func IsDynamicID(id string) bool {
	if id == "" {
		return false
	}
	return guidRe.MatchString(id) ||
		alnumRunRe.MatchString(id) ||
		millisRunRe.MatchString(id) ||
		trailingDigits.MatchString(id)
}
