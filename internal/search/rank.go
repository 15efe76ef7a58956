// file: internal/search/rank.go
// version: 1.2.0
// guid: 9c4e7b2a-6d1f-4c8e-b5a9-2e8d4f7c1a63

package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mfigueroa/stockroom/internal/models"
)

// Result is a ranked match returned to callers, with the strategy-internal
// priority stripped away.
type Result struct {
	Item      models.CatalogItem `json:"item"`
	Score     float64            `json:"score"`
	MatchType MatchType          `json:"match_type"`
}

// rankCandidates orders candidates by priority desc, score desc, then name
// asc under a case-insensitive collator, and truncates to cap AFTER sorting.
// The alphabetical last key makes equal-priority equal-score ties
// deterministic, which pagination over repeated identical queries relies on.
func rankCandidates(candidates []Candidate, cap int) []Result {
	coll := collate.New(language.English, collate.IgnoreCase)

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return coll.CompareString(a.Item.Name, b.Item.Name) < 0
	})

	if cap > 0 && len(candidates) > cap {
		candidates = candidates[:cap]
	}

	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = Result{Item: c.Item, Score: c.Score, MatchType: c.Type}
	}
	return results
}
