// file: internal/search/merge.go
// version: 1.1.0
// guid: 4b9e2c7d-8f3a-4d6c-9b1e-3a7f2d8c5e94

package search

// betterThan reports whether a should replace b for the same entity.
// Priority strictly dominates; score only breaks ties within a priority.
// Because the comparison is explicit, merge order is irrelevant: candidate
// lists may arrive in any order from the concurrent executors.
func betterThan(a, b Candidate) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Score > b.Score
}

// mergeCandidates deduplicates candidates by entity id, keeping the best
// variant per entity. An entity matched by no strategy is simply absent.
func mergeCandidates(lists [][]Candidate) map[string]Candidate {
	merged := make(map[string]Candidate)
	for _, list := range lists {
		mergeInto(merged, list)
	}
	return merged
}

// mergeInto folds one candidate list into the accumulator map.
func mergeInto(merged map[string]Candidate, list []Candidate) {
	for _, c := range list {
		if existing, ok := merged[c.Item.ID]; !ok || betterThan(c, existing) {
			merged[c.Item.ID] = c
		}
	}
}
