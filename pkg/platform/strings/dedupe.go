// Package strings normalises free-text tag lists before they are stored.
package strings

import (
	"strings"
)

// TagSet trims, lowercases and de-duplicates values, dropping blanks.
// First-seen order is kept so a stored set reads the way it was entered.
//
//	TagSet([]string{" Peanuts ", "dairy", "PEANUTS", ""})
//	// Returns: []string{"peanuts", "dairy"}
func TagSet(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		tag := strings.ToLower(strings.TrimSpace(v))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// Intersect returns the members of a that also appear in b, in a's order.
// Both inputs are expected to be normalised with TagSet.
func Intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	var out []string
	for _, v := range a {
		if _, ok := inB[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
