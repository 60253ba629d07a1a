package version

import "fmt"

// ParseError reports a malformed version, requirement, or window string.
// Registration is aborted and no document is mutated when one surfaces.
type ParseError struct {
	// Input is the full string that was being parsed.
	Input string
	// Clause is the offending comma-separated clause, when the input has
	// clause structure. Empty (or equal to Input) for single-value parses.
	Clause string
	// Reason describes what was wrong.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Clause != "" && e.Clause != e.Input {
		return fmt.Sprintf("parse %q: bad clause %q: %s", e.Input, e.Clause, e.Reason)
	}
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// AmbiguityError reports two textually distinct versions that compare equal
// under the total order. This should be impossible for well-formed inputs
// (build metadata aside) and is treated as fatal rather than silently
// resolved, since it would make partition boundaries ill-defined.
type AmbiguityError struct {
	A, B string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous version order: %q and %q are distinct but compare equal", e.A, e.B)
}
