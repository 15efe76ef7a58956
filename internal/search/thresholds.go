// file: internal/search/thresholds.go
// version: 1.0.0
// guid: 2f7c4e9a-5b1d-4a8e-9c3b-7e2f5a8d1c46

package search

import "unicode/utf8"

// SimilarityThreshold maps query length to the minimum trigram similarity a
// candidate must reach. Very short queries carry little discriminating
// signal, so the bar stays low and tightens as the query grows.
func SimilarityThreshold(query string) float64 {
	switch n := utf8.RuneCountInString(query); {
	case n <= 2:
		return 0.10
	case n <= 4:
		return 0.15
	case n <= 8:
		return 0.25
	default:
		return 0.35
	}
}

// MaxEditDistance maps query length to the edit-distance budget for the
// typo-tolerance strategy. Short queries get a single edit so they do not
// match nearly everything.
func MaxEditDistance(query string) int {
	if utf8.RuneCountInString(query) <= 3 {
		return 1
	}
	return 3
}
