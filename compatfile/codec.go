// Package compatfile reads and writes the persisted compatibility
// document. The format is TOML: top-level entries form the catch-all
// block, and each table, keyed by a version window, is one section.
//
// Decoding accepts any equivalent TOML spelling (including legacy
// string-array values). Encoding is canonical and deterministic:
// re-encoding a decoded, unmodified table reproduces the input bytes, so
// unrelated registrations keep registry diffs minimal.
package compatfile

import (
	"bytes"
	"fmt"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/albertocavalcante/go-regcompat/compat"
	"github.com/albertocavalcante/go-regcompat/internal/tomlenc"
	"github.com/albertocavalcante/go-regcompat/version"
)

// Decode parses a persisted compatibility document. Empty or
// whitespace-only input yields an empty table (no versions registered
// yet).
func Decode(data []byte) (*compat.Table, error) {
	t := compat.NewTable()
	if len(bytes.TrimSpace(data)) == 0 {
		return t, nil
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode compat document: %w", err)
	}

	for key, val := range raw {
		section, ok := val.(map[string]any)
		if !ok {
			r, err := decodeRange(key, val)
			if err != nil {
				return nil, err
			}
			t.CatchAll[key] = r
			continue
		}

		w, err := version.ParseWindow(key)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", key, err)
		}
		entries := make(compat.Entries, len(section))
		for name, v := range section {
			r, err := decodeRange(name, v)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", key, err)
			}
			entries[name] = r
		}
		t.Sections = append(t.Sections, compat.Section{Window: w, Entries: entries})
	}

	t.Sort()
	return t, nil
}

// decodeRange parses an entry value: a requirement string, or a legacy
// array of requirement strings unioned together.
func decodeRange(name string, val any) (*version.RangeSet, error) {
	switch v := val.(type) {
	case string:
		r, err := version.ParseRange(v)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		return r, nil
	case []any:
		var out *version.RangeSet
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("entry %q: array element is %T, want string", name, elem)
			}
			r, err := version.ParseRange(s)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", name, err)
			}
			out = out.Union(r)
		}
		if out == nil {
			return nil, fmt.Errorf("entry %q: empty array", name)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("entry %q: value is %T, want string", name, val)
	}
}

// Encode renders the table in canonical form: catch-all entries sorted by
// name, then sections in ascending window order, each with sorted entries
// and canonical range strings.
func Encode(t *compat.Table) ([]byte, error) {
	var buf bytes.Buffer

	for _, name := range sortedNames(t.CatchAll) {
		writeEntry(&buf, name, t.CatchAll[name])
	}

	sections := make([]compat.Section, len(t.Sections))
	copy(sections, t.Sections)
	tmp := &compat.Table{Sections: sections}
	tmp.Sort()

	for _, s := range tmp.Sections {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		key := s.Window.Key()
		if key == "" {
			return nil, fmt.Errorf("section has empty window key")
		}
		fmt.Fprintf(&buf, "[%s]\n", tomlenc.Key(key))
		for _, name := range sortedNames(s.Entries) {
			writeEntry(&buf, name, s.Entries[name])
		}
	}

	return buf.Bytes(), nil
}

func writeEntry(buf *bytes.Buffer, name string, r *version.RangeSet) {
	fmt.Fprintf(buf, "%s = %s\n", tomlenc.Key(name), tomlenc.String(r.String()))
}

func sortedNames(e compat.Entries) []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
