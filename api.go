// Package regcompat maintains the compressed dependency-compatibility
// document of a package registry.
//
// A registry records, for every published version of a package, which
// versions of each dependency are compatible. Rather than one entry per
// release, the document stores the smallest set of non-overlapping
// version-window sections that reproduces the exact per-version truth.
// This package owns that compression: on each registration it decodes the
// existing document, merges the new version's compat facts into the full
// history, recomputes the minimal section partition, and re-encodes.
//
// # Quick start
//
//	doc, err := regcompat.RegisterVersion(regcompat.Registration{
//	    Package: regcompat.Package{Name: "Example"},
//	    Version: "0.2.0",
//	    Compat:  map[string]string{"DepA": "0.1, 0.2"},
//	    Existing: existingBytes,
//	    Known:    []string{"0.1.0"},
//	})
//
// # Ordering
//
// Every partition decision uses the full semantic-version order,
// pre-release identifiers included: 1.2.3-beta.1 < 1.2.3-beta.2 < 1.2.3.
// Consecutive versions that differ only in pre-release tags therefore get
// distinct sections when their compat differs.
//
// # Purity
//
// RegisterVersion is a pure function from (old document, new fact) to
// (new document | error). Persistence, git plumbing, and locking belong to
// the caller; the compatfile package offers an atomic file writer for
// callers that want one. No partial document is ever produced: encoding
// happens only after the rebuilt table passes invariant validation.
package regcompat

import (
	"fmt"

	"github.com/albertocavalcante/go-regcompat/compat"
	"github.com/albertocavalcante/go-regcompat/compatfile"
	"github.com/albertocavalcante/go-regcompat/version"
)

// RegisterVersion merges one new version's compat facts into the package's
// compatibility document and returns the re-encoded document bytes.
//
// Errors: *version.ParseError for malformed version or requirement
// strings, *version.AmbiguityError when two distinct versions compare
// equal, ErrVersionExists on duplicate registration (without
// WithAllowOverwrite), and *compat.OverlapError (possibly aggregated) when
// the rebuilt table fails its own consistency check — the latter is an
// engine defect, never caller input, and nothing is persisted in any error
// case.
func RegisterVersion(reg Registration, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	newVersion, err := version.Parse(reg.Version)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", reg.Package, err)
	}

	newCompat := make(compat.Entries, len(reg.Compat))
	for name, req := range reg.Compat {
		r, err := version.ParseRange(req)
		if err != nil {
			return nil, fmt.Errorf("register %s@%s: compat entry %q: %w",
				reg.Package, reg.Version, name, err)
		}
		newCompat[name] = r
	}

	known, err := orderedVersions(reg.Known)
	if err != nil {
		return nil, fmt.Errorf("register %s@%s: %w", reg.Package, reg.Version, err)
	}

	table, err := compatfile.Decode(reg.Existing)
	if err != nil {
		return nil, fmt.Errorf("register %s@%s: %w", reg.Package, reg.Version, err)
	}
	history, err := compat.Expand(table, known)
	if err != nil {
		return nil, fmt.Errorf("register %s@%s: %w", reg.Package, reg.Version, err)
	}

	ordered, inserted, err := version.Insert(history.Versions, newVersion)
	if err != nil {
		return nil, fmt.Errorf("register %s@%s: %w", reg.Package, reg.Version, err)
	}
	if !inserted {
		if !cfg.allowOverwrite {
			return nil, fmt.Errorf("register %s@%s: %w", reg.Package, reg.Version, ErrVersionExists)
		}
		cfg.log().Debug("overwriting registered version",
			"package", reg.Package.Name, "version", reg.Version)
	}
	history.Versions = ordered
	history.Compat[newVersion.Original()] = newCompat

	rebuilt := compat.Compress(history)
	if err := compat.Validate(rebuilt, history); err != nil {
		return nil, fmt.Errorf("register %s@%s: internal consistency: %w",
			reg.Package, reg.Version, err)
	}

	out, err := compatfile.Encode(rebuilt)
	if err != nil {
		return nil, fmt.Errorf("register %s@%s: %w", reg.Package, reg.Version, err)
	}

	cfg.log().Debug("registered version",
		"package", reg.Package.Name,
		"version", reg.Version,
		"sections", len(rebuilt.Sections),
		"catchall_entries", len(rebuilt.CatchAll))
	return out, nil
}

// orderedVersions parses and orders the known version list, rejecting
// textually distinct versions that compare equal. Exact duplicates in the
// input are tolerated and collapse to one.
func orderedVersions(raw []string) ([]*version.Version, error) {
	var ordered []*version.Version
	for _, s := range raw {
		v, err := version.Parse(s)
		if err != nil {
			return nil, err
		}
		ordered, _, err = version.Insert(ordered, v)
		if err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
