// Package version provides the total ordering over semantic versions and
// the range arithmetic used by the compat compression engine.
//
// Every partition decision in the engine goes through the ordering defined
// here, on full versions including pre-release identifiers. Keying on a
// truncated (major, minor, patch) tuple is exactly the defect this package
// exists to prevent: two versions that differ only in pre-release tags are
// distinct partition keys.
package version

import (
	"slices"

	"github.com/Masterminds/semver/v3"
)

// Version is the semantic version value used throughout the engine.
// It is the Masterminds semver type; its Compare method implements semver
// precedence, including pre-release identifier comparison (numeric before
// alphanumeric, numeric compared numerically) and ignoring build metadata.
type Version = semver.Version

// Parse parses a registered version string. Strict semver is required:
// three numeric parts, optional pre-release, optional build metadata.
func Parse(s string) (*Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, &ParseError{Input: s, Reason: err.Error()}
	}
	return v, nil
}

// MustParse parses a version or panics. Use only for constants and tests.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders two versions per semver precedence.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func Compare(a, b *Version) int {
	return a.Compare(b)
}

// Sort orders versions in place, ascending.
func Sort(vs []*Version) {
	slices.SortFunc(vs, Compare)
}

// Insert places v into an ordered version list, keeping the order.
//
// The returned bool is false when a version with the same canonical text is
// already present (the list is returned unchanged). If v compares equal to
// an existing version but is textually distinct — build metadata is the
// usual culprit, since it does not participate in precedence — the order
// would be ambiguous and an *AmbiguityError is returned.
func Insert(list []*Version, v *Version) ([]*Version, bool, error) {
	idx, found := slices.BinarySearchFunc(list, v, Compare)
	if found {
		existing := list[idx]
		if existing.Original() != v.Original() {
			return list, false, &AmbiguityError{A: existing.Original(), B: v.Original()}
		}
		return list, false, nil
	}
	return slices.Insert(list, idx, v), true, nil
}
