package regcompat

import (
	"fmt"

	"github.com/google/uuid"
)

// RuntimeDependency is the reserved entry name for the host-runtime
// version constraint. The engine compresses it like any other dependency;
// the name is reserved so registries agree on where the runtime bound
// lives in the document.
const RuntimeDependency = "runtime"

// Package identifies the package being registered. Name and UUID come from
// the enclosing registry; resolving one from the other is the caller's
// concern.
type Package struct {
	Name string
	UUID uuid.UUID
}

func (p Package) String() string {
	if p.UUID == uuid.Nil {
		return p.Name
	}
	return fmt.Sprintf("%s [%s]", p.Name, p.UUID)
}

// Registration carries one version-registration request. The engine is a
// pure function over these fields: it never touches disk or the network,
// so the caller owns locking and can retry the whole cycle after losing a
// race.
type Registration struct {
	// Package is the package being registered.
	Package Package

	// Version is the new version, strict semver, pre-release tags
	// included.
	Version string

	// Compat maps dependency names to requirement strings, e.g.
	// {"DepA": "0.1, 0.2"}. This map is the complete compat truth for
	// the new version: a dependency absent here has no constraint at
	// this version, it does not inherit an earlier one.
	Compat map[string]string

	// Existing is the current persisted document. Nil or empty when the
	// package has no document yet.
	Existing []byte

	// Known lists every previously registered version of the package.
	// Order does not matter; the engine re-sorts by the full version
	// order.
	Known []string
}
