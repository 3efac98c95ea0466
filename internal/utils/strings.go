package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitStopList splits comma/semicolon separated stop names into cleaned slices.
// Stop names keep their original casing; matching terhadap rute bersifat case-sensitive.
func SplitStopList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = NormalizeSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
