// Package tomlenc provides the key and string quoting used by the
// canonical compat-document writer. The writer emits TOML by hand to keep
// the output byte-for-byte deterministic, so it needs exact control over
// quoting.
package tomlenc

import (
	"strings"
	"unicode/utf8"
)

// Key renders s as a TOML key: bare when the character set allows it,
// quoted otherwise. Section window keys contain dots and hyphens, so they
// are always quoted.
func Key(s string) string {
	if isBareKey(s) {
		return s
	}
	return String(s)
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// String renders s as a TOML basic string.
func String(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == utf8.RuneError {
				const hex = "0123456789ABCDEF"
				b.WriteString(`\u00`)
				b.WriteByte(hex[byte(r)>>4])
				b.WriteByte(hex[byte(r)&0xF])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
