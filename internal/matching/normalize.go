// internal/matching/normalize.go
package matching

import "strings"

// NormalizeSkill returns the comparison form of a skill or requirement label.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = NormalizeSkill(s)
	}
	return out
}
