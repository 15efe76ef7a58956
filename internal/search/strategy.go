// file: internal/search/strategy.go
// version: 1.3.0
// guid: 8e3b6d1f-4a9c-4e7b-8f2d-6c1a9e4b7d35

package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/models"
)

// MatchType labels which strategy produced a candidate.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchPrefix      MatchType = "prefix"
	MatchSubstring   MatchType = "substring"
	MatchAcronym     MatchType = "acronym"
	MatchTrigram     MatchType = "trigram"
	MatchLevenshtein MatchType = "levenshtein"
)

// Candidate is one entity proposed by one strategy, before merging.
type Candidate struct {
	Item     models.CatalogItem
	Type     MatchType
	Score    float64
	Priority int
}

// Strategy is one row of the declarative strategy table. StoreScored marks
// strategies whose score comes back from the matching query; the rest carry
// a fixed confidence value.
type Strategy struct {
	Type        MatchType
	Priority    int
	FixedScore  float64
	StoreScored bool
	ProductCap  int
	CategoryCap int

	buildSpec func(query string) database.MatchSpec
}

// strategies is ordered highest priority first. The merge step does not
// depend on this order (it compares candidates explicitly); the sequential
// early-termination path does.
var strategies = []Strategy{
	{
		Type: MatchExact, Priority: 6, FixedScore: 1.0,
		ProductCap: 50, CategoryCap: 20,
		buildSpec: func(q string) database.MatchSpec {
			return database.MatchSpec{Op: database.MatchEqual, Query: q}
		},
	},
	{
		Type: MatchPrefix, Priority: 5, FixedScore: 0.9,
		ProductCap: 30, CategoryCap: 15,
		buildSpec: func(q string) database.MatchSpec {
			return database.MatchSpec{Op: database.MatchPrefix, Query: q}
		},
	},
	{
		Type: MatchSubstring, Priority: 4, FixedScore: 0.8,
		ProductCap: 25, CategoryCap: 10,
		buildSpec: func(q string) database.MatchSpec {
			return database.MatchSpec{Op: database.MatchContains, Query: q}
		},
	},
	{
		Type: MatchAcronym, Priority: 3, FixedScore: 0.7,
		ProductCap: 20, CategoryCap: 10,
		buildSpec: func(q string) database.MatchSpec {
			return database.MatchSpec{Op: database.MatchPattern, Query: q, Pattern: acronymPattern(q)}
		},
	},
	{
		Type: MatchTrigram, Priority: 2, StoreScored: true,
		ProductCap: 15, CategoryCap: 8,
		buildSpec: func(q string) database.MatchSpec {
			return database.MatchSpec{Op: database.MatchSimilar, Query: q, Threshold: SimilarityThreshold(q)}
		},
	},
	{
		Type: MatchLevenshtein, Priority: 1, StoreScored: true,
		ProductCap: 10, CategoryCap: 5,
		buildSpec: func(q string) database.MatchSpec {
			return database.MatchSpec{Op: database.MatchDistance, Query: q, MaxDistance: MaxEditDistance(q)}
		},
	},
}

// basicStrategyCount is the prefix of the table used when fuzzy matching is
// off or the query is below the minimum meaningful length.
const basicStrategyCount = 3

func (st Strategy) cap(kind models.ItemKind) int {
	if kind == models.KindCategory {
		return st.CategoryCap
	}
	return st.ProductCap
}

// execute runs the strategy's matching query and tags the results. A store
// failure is returned as-is; the orchestrator treats it as fatal for the
// whole search call.
func (st Strategy) execute(ctx context.Context, catalog Catalog, shopID string, kind models.ItemKind, query string) ([]Candidate, error) {
	spec := st.buildSpec(query)
	spec.Limit = st.cap(kind)

	scored, err := catalog.MatchCatalog(ctx, shopID, kind, spec)
	if err != nil {
		return nil, fmt.Errorf("%s strategy failed: %w", st.Type, err)
	}

	candidates := make([]Candidate, 0, len(scored))
	for _, s := range scored {
		score := st.FixedScore
		if st.StoreScored {
			score = s.Score
		}
		candidates = append(candidates, Candidate{
			Item:     s.Item,
			Type:     st.Type,
			Score:    score,
			Priority: st.Priority,
		})
	}
	return candidates, nil
}

// acronymPattern builds the per-character wildcard pattern that lets "p1"
// match "product-1". Every query character is LIKE-escaped before being
// joined with wildcards.
func acronymPattern(query string) string {
	var b strings.Builder
	b.WriteString("%")
	for _, r := range query {
		b.WriteString(database.EscapeLike(string(r)))
		b.WriteString("%")
	}
	return b.String()
}
