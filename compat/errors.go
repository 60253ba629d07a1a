package compat

import "fmt"

// OverlapError reports a dependency defined by two blocks whose windows
// both cover the same concrete version. This is never a user input error:
// a table that fails this check is a compressor defect and must not be
// persisted.
type OverlapError struct {
	// Name is the dependency defined twice.
	Name string
	// Version is a registered version covered by both windows.
	Version string
	// Windows are the two conflicting window keys ("*" for the
	// catch-all).
	Windows [2]string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("dependency %q at version %s is defined by overlapping windows %q and %q",
		e.Name, e.Version, e.Windows[0], e.Windows[1])
}
