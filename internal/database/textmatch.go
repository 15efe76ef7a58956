// file: internal/database/textmatch.go
// version: 1.2.0
// guid: 7a4d9e2b-6f1c-4b8a-9d3e-5c0f8b2a7d41

package database

import (
	"strings"
	"unicode/utf8"
)

// TrigramSimilarity computes a case-insensitive character-trigram Jaccard
// similarity in [0,1] between a and b. Strings are padded with two leading
// spaces and one trailing space before trigram extraction, so one-character
// prefixes still contribute signal on very short names.
func TrigramSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ta := trigramSet(a)
	tb := trigramSet(b)

	intersection := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// trigramSet extracts the set of rune trigrams from the padded string.
func trigramSet(s string) map[string]struct{} {
	padded := []rune("  " + s + " ")
	set := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		set[string(padded[i:i+3])] = struct{}{}
	}
	return set
}

// LevenshteinDistance computes the case-insensitive edit distance between
// two strings using a single-row DP over runes.
func LevenshteinDistance(a, b string) int64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	la, lb := len(ra), len(rb)
	if la == 0 {
		return int64(lb)
	}
	if lb == 0 {
		return int64(la)
	}

	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev = curr
	}
	return int64(prev[lb])
}

// NormalizedEditScore converts a raw edit distance into the [0,1] score used
// by the edit-distance strategy: 1 - dist/max(len(name), len(query)), in
// runes, clamped at zero.
func NormalizedEditScore(dist int64, name, query string) float64 {
	denom := utf8.RuneCountInString(name)
	if q := utf8.RuneCountInString(query); q > denom {
		denom = q
	}
	if denom == 0 {
		return 0
	}
	score := 1 - float64(dist)/float64(denom)
	if score < 0 {
		return 0
	}
	return score
}
