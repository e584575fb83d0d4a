package domain

import (
	"slices"
	"strings"
)

// ParseScopes splits a space-delimited scope parameter. Blank input yields nil.
func ParseScopes(s string) []string {
	if f := strings.Fields(s); len(f) > 0 {
		return f
	}
	return nil
}

// NormalizeScopes returns a sorted copy without duplicates or empty entries,
// or nil when nothing is left.
func NormalizeScopes(scopes []string) []string {
	var out []string
	for _, s := range scopes {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// JoinScopes renders scopes the way they go on the wire.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}
