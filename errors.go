package regcompat

import "errors"

// Sentinel errors for common registration failures.
var (
	// ErrVersionExists indicates the version being registered is already
	// known. Pass WithAllowOverwrite to replace its compat map instead.
	ErrVersionExists = errors.New("version already registered")
)
