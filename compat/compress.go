package compat

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/scylladb/go-set/strset"

	"github.com/albertocavalcante/go-regcompat/version"
)

// run is a maximal stretch of consecutive registered versions sharing a
// semantically equal range for one dependency. Indexes are into
// History.Versions.
type run struct {
	start, end int
	set        *version.RangeSet
}

// Compress rebuilds the minimal section partition from the full history.
//
// For every dependency name seen anywhere in the history, maximal runs of
// consecutive versions with equal ranges become windows. A version where
// the dependency is undeclared has no constraint there: it breaks the run
// and is covered by no window. A dependency whose range is declared, and
// equal, at every registered version collapses into a single catch-all
// entry. Run boundaries are decided by the full version order — two
// versions differing only in pre-release identifiers are distinct
// partition keys.
func Compress(h *History) *Table {
	t := NewTable()
	n := len(h.Versions)
	if n == 0 {
		return t
	}

	names := strset.New()
	for _, m := range h.Compat {
		for name := range m {
			names.Add(name)
		}
	}
	ordered := names.List()
	sort.Strings(ordered)

	sections := map[string]*Section{}
	for _, name := range ordered {
		runs := runsFor(h, name)
		if len(runs) == 1 && runs[0].start == 0 && runs[0].end == n-1 {
			t.CatchAll[name] = runs[0].set
			continue
		}
		for _, r := range runs {
			w := windowFor(h, r, n)
			key := w.Key()
			s, ok := sections[key]
			if !ok {
				s = &Section{Window: w, Entries: Entries{}}
				sections[key] = s
			}
			s.Entries[name] = r.set
		}
	}

	for _, s := range sections {
		t.Sections = append(t.Sections, *s)
	}
	t.Sort()
	return t
}

// runsFor splits the version history into maximal equal-range runs for one
// dependency.
func runsFor(h *History, name string) []run {
	var runs []run
	open := false
	for i, v := range h.Versions {
		r := h.Compat[v.Original()][name]
		if r == nil {
			open = false
			continue
		}
		if open && r.Equal(runs[len(runs)-1].set) {
			runs[len(runs)-1].end = i
			continue
		}
		runs = append(runs, run{start: i, end: i, set: r})
		open = true
	}
	return runs
}

// windowFor derives the section window covering a run. The first run of a
// dependency is anchored at zero and the last is left unbounded, so keys
// stay stable when versions are appended; interior windows are closed over
// the run's first and last registered versions, pre-release tags included.
func windowFor(h *History, r run, n int) version.Interval {
	lo := version.ZeroBound()
	if r.start > 0 {
		lo = version.BoundOf(h.Versions[r.start])
	}
	hi := version.Unbounded()
	if r.end < n-1 {
		hi = version.BoundOf(h.Versions[r.end])
	}
	return version.Interval{Lo: lo, Hi: hi}
}

// Validate re-expands a freshly compressed table and checks it against the
// history it was built from: per-dependency overlap freedom for every
// registered version, and exact equality of the effective maps with the
// declared ones. Any failure is a compressor defect; all violations are
// aggregated so the report names every conflict at once.
func Validate(t *Table, h *History) error {
	var result *multierror.Error
	for _, v := range h.Versions {
		got, err := t.EffectiveCompat(v)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		want := h.Compat[v.Original()]
		for name, r := range want {
			if !r.Equal(got[name]) {
				result = multierror.Append(result, fmt.Errorf(
					"effective compat diverged: %q at %s is %q, declared %q",
					name, v.Original(), got[name], r))
			}
		}
		for name := range got {
			if _, ok := want[name]; !ok {
				result = multierror.Append(result, fmt.Errorf(
					"effective compat diverged: %q at %s is constrained but was not declared",
					name, v.Original()))
			}
		}
	}
	return result.ErrorOrNil()
}
