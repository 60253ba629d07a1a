// Package compat models the per-package compatibility document and the
// compression algorithm that maintains it. A document is a catch-all block
// plus version-window-keyed sections; each section maps dependency names to
// the version ranges compatible within that window. The table is rebuilt
// from the full registration history on every change, never patched in
// place.
package compat

import (
	"fmt"
	"slices"

	"github.com/albertocavalcante/go-regcompat/version"
)

// catchAllWindow is the window label used when reporting conflicts with a
// catch-all entry, which covers the entire version line.
const catchAllWindow = "*"

// Entries maps dependency names to their compatible version ranges.
type Entries map[string]*version.RangeSet

func (e Entries) clone() Entries {
	out := make(Entries, len(e))
	for name, r := range e {
		out[name] = r
	}
	return out
}

// Section is one version-window-scoped block of compat entries.
type Section struct {
	Window  version.Interval
	Entries Entries
}

// Table is the in-memory form of a compatibility document: the catch-all
// entries plus the keyed sections, ordered ascending by window.
//
// Invariant: for any dependency name and any registered version, at most
// one of the blocks whose window contains that version defines the name.
// A dependency in the catch-all therefore never also appears in a keyed
// section. Validate enforces this after every rebuild.
type Table struct {
	CatchAll Entries
	Sections []Section
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{CatchAll: Entries{}}
}

// Sort orders sections ascending by window lower bound, then upper bound.
// Section order in the persisted document follows this order.
func (t *Table) Sort() {
	slices.SortFunc(t.Sections, func(a, b Section) int {
		return version.CompareIntervals(a.Window, b.Window)
	})
}

// EffectiveCompat returns the dependency constraints in force at v: the
// union of the catch-all and every section whose window contains v. A
// dependency defined by two such blocks violates the partition invariant
// and yields an *OverlapError.
func (t *Table) EffectiveCompat(v *version.Version) (Entries, error) {
	out := Entries{}
	claimed := map[string]string{}
	for name, r := range t.CatchAll {
		out[name] = r
		claimed[name] = catchAllWindow
	}
	for _, s := range t.Sections {
		if !s.Window.Contains(v) {
			continue
		}
		key := s.Window.Key()
		for name, r := range s.Entries {
			if prev, ok := claimed[name]; ok {
				return nil, &OverlapError{
					Name:    name,
					Version: v.Original(),
					Windows: [2]string{prev, key},
				}
			}
			out[name] = r
			claimed[name] = key
		}
	}
	return out, nil
}

// History is the decompressed document: every registered version, in
// order, with the full dependency→range map that applied at it. The
// compressor works on this form and re-derives the section partition from
// scratch.
type History struct {
	// Versions is ordered ascending by the full version order.
	Versions []*version.Version
	// Compat is keyed by Version.Original(). A name absent from a
	// version's map means "no constraint at that version".
	Compat map[string]Entries
}

// Expand decompresses a table against the list of registered versions.
func Expand(t *Table, versions []*version.Version) (*History, error) {
	h := &History{
		Versions: slices.Clone(versions),
		Compat:   make(map[string]Entries, len(versions)),
	}
	version.Sort(h.Versions)
	for _, v := range h.Versions {
		m, err := t.EffectiveCompat(v)
		if err != nil {
			return nil, fmt.Errorf("expand document: %w", err)
		}
		h.Compat[v.Original()] = m
	}
	return h, nil
}
