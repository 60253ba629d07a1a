package tomlenc

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DepA", "DepA"},
		{"dep_a-2", "dep_a-2"},
		{"0.1.0", `"0.1.0"`},
		{"0 - 0.1.0-beta.1", `"0 - 0.1.0-beta.1"`},
		{"", `""`},
		{"a.b", `"a.b"`},
	}
	for _, tt := range tests {
		if got := Key(tt.input); got != tt.want {
			t.Errorf("Key(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0.1-0.2", `"0.1-0.2"`},
		{`with "quotes"`, `"with \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"ctrl\x01char", `"ctrl\u0001char"`},
	}
	for _, tt := range tests {
		if got := String(tt.input); got != tt.want {
			t.Errorf("String(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
