// Package match implements the text-matching primitive used by list
// filtering: plain substring containment first, ordered-subsequence
// containment as the fallback. There is no scoring and no edit distance.
package match

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matches reports whether pattern matches haystack. An empty pattern matches
// everything. Matching is case-insensitive; a contiguous substring wins
// immediately, otherwise the pattern characters must appear in haystack in
// order.
func Matches(haystack, pattern string) bool {
	if pattern == "" {
		return true
	}
	if strings.Contains(strings.ToLower(haystack), strings.ToLower(pattern)) {
		return true
	}
	return fuzzy.MatchFold(pattern, haystack)
}

// MatchesAny reports whether pattern matches any of the given fields.
func MatchesAny(pattern string, fields ...string) bool {
	if pattern == "" {
		return true
	}
	for _, field := range fields {
		if Matches(field, pattern) {
			return true
		}
	}
	return false
}
