package generator

import "fmt"

// exampleParam is one Examples-table column collected from a
// parameterized Fill or Select step.
type exampleParam struct {
	Column string
	Value  string
}

// emitSession owns the mutable "seen" state that emission accumulates:
// the locator, constant-name, and method-name sets that enforce the
// per-artifact uniqueness invariants, plus the step phrases and Examples
// columns collected along the way. One session lives for exactly one
// generation run and is passed into every emission step.
type emitSession struct {
	// locatorConstants maps a resolved locator to the constant that
	// already holds it; a repeated locator reuses the earlier constant
	// instead of minting a near-duplicate.
	locatorConstants map[string]string

	// constants and methods are the per-artifact identifier sets.
	constants map[string]bool
	methods   map[string]bool

	// methodByKey maps (kind, constant) to the emitted method name so
	// the page object exposes exactly one method per pair.
	methodByKey map[string]string

	// steps is the set of step phrases already emitted to the feature.
	steps map[string]bool

	// params are the Examples columns, in first-seen order.
	params []exampleParam

	// paramColumns guards against duplicate column names.
	paramColumns map[string]bool

	// loginSubstituted records that the canonical login steps replaced
	// a recorded login block.
	loginSubstituted bool
}

func newEmitSession() *emitSession {
	return &emitSession{
		locatorConstants: map[string]string{},
		constants:        map[string]bool{},
		methods:          map[string]bool{},
		methodByKey:      map[string]string{},
		steps:            map[string]bool{},
		paramColumns:     map[string]bool{},
	}
}

// addParam registers an Examples column, suffixing the column name with
// the action sequence when the recording fills two distinct elements
// that derive to the same column.
func (s *emitSession) addParam(column, value string, sequence int) string {
	if s.paramColumns[column] {
		column = columnWithSuffix(column, sequence)
	}
	s.paramColumns[column] = true
	s.params = append(s.params, exampleParam{Column: column, Value: value})
	return column
}

func columnWithSuffix(column string, sequence int) string {
	return fmt.Sprintf("%s%d", column, sequence)
}
