// file: internal/search/filter.go
// version: 1.1.0
// guid: 6d1f8b3e-2c7a-4f9d-8e4b-1c6a3f9e2b75

package search

import "strings"

// applyPrecisionFilter narrows multi-word results: every query token must
// appear as a substring of the entity's searchable text (name + SKU). The
// per-string strategies tolerate typos but cannot require that all words of
// the query are present, so without this pass a three-word query could be
// satisfied by one highly similar word. Single-token queries pass through
// untouched. The filter only removes candidates, never adds.
func applyPrecisionFilter(candidates []Candidate, query string) []Candidate {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) <= 1 {
		return candidates
	}

	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		text := strings.ToLower(c.Item.SearchableText())
		all := true
		for _, token := range tokens {
			if !strings.Contains(text, token) {
				all = false
				break
			}
		}
		if all {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
