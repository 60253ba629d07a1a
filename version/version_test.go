package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1.0.0", false},
		{"0.50.1", false},
		{"2.3.4-rc1", false},
		{"1.0.0-alpha.1", false},
		{"1.0.0+build.123", false},
		{"1.0.0-beta.2+build", false},
		{"0.1.0-beta.1", false},
		// Strict semver only: registered versions are always full.
		{"1.0", true},
		{"1", true},
		{"v1.0.0", true},
		{"1.0.0-", true},
		{"abc", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.input)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Errorf("Parse(%q) error = %T, want *ParseError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.1.0", "1.0.0", 1},
		{"1.0.0", "1.0.1", -1},
		// Pre-release precedence: a pre-release sorts before its release.
		{"1.2.3-beta.1", "1.2.3", -1},
		{"1.2.3-beta.1", "1.2.3-beta.2", -1},
		// A pre-release tag never outweighs a triple difference.
		{"1.2.3-beta.9", "1.2.4-beta.1", -1},
		// Numeric identifiers sort before alphanumeric ones.
		{"1.0.0-1", "1.0.0-alpha", -1},
		{"1.0.0-alpha.1", "1.0.0-alpha.beta", -1},
		// A shorter identifier list that is a prefix sorts first.
		{"1.0.0-alpha", "1.0.0-alpha.1", -1},
		// Build metadata does not participate in precedence.
		{"1.0.0+build.1", "1.0.0+build.2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			if got := Compare(a, b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Compare(b, a); got != -tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	vs := []*Version{
		MustParse("0.2.0"),
		MustParse("0.1.0-beta.2"),
		MustParse("0.1.0"),
		MustParse("0.2.0-rc.1"),
		MustParse("0.1.0-beta.1"),
	}
	Sort(vs)

	want := []string{"0.1.0-beta.1", "0.1.0-beta.2", "0.1.0", "0.2.0-rc.1", "0.2.0"}
	for i, w := range want {
		if vs[i].Original() != w {
			t.Errorf("Sort()[%d] = %s, want %s", i, vs[i].Original(), w)
		}
	}
}

func TestInsert(t *testing.T) {
	list := []*Version{MustParse("0.1.0"), MustParse("0.3.0")}

	list, inserted, err := Insert(list, MustParse("0.2.0-beta.1"))
	if err != nil || !inserted {
		t.Fatalf("Insert(0.2.0-beta.1) = %v, %v", inserted, err)
	}
	if got := list[1].Original(); got != "0.2.0-beta.1" {
		t.Errorf("Insert placed 0.2.0-beta.1 at the wrong position: list[1] = %s", got)
	}

	// Exact duplicate: not inserted, not an error.
	list, inserted, err = Insert(list, MustParse("0.3.0"))
	if err != nil {
		t.Fatalf("Insert(duplicate) unexpected error: %v", err)
	}
	if inserted || len(list) != 3 {
		t.Errorf("Insert(duplicate) = %v, len %d, want false, 3", inserted, len(list))
	}

	// Textually distinct but equal under the order: fatal ambiguity.
	_, _, err = Insert(list, MustParse("0.3.0+build.5"))
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("Insert(0.3.0+build.5) error = %v, want *AmbiguityError", err)
	}
}
