// file: internal/search/merge_test.go
// version: 1.1.0
// guid: 1d6f3b8e-4c9a-4e2d-8b7f-3a5c9e1d6b48

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/stockroom/internal/models"
)

func candidate(id string, mt MatchType, priority int, score float64) Candidate {
	return Candidate{
		Item:     models.CatalogItem{ID: id, Name: id},
		Type:     mt,
		Score:    score,
		Priority: priority,
	}
}

func TestBetterThanPriorityDominatesScore(t *testing.T) {
	exact := candidate("a", MatchExact, 6, 1.0)
	trigram := candidate("a", MatchTrigram, 2, 0.99)

	assert.True(t, betterThan(exact, trigram))
	assert.False(t, betterThan(trigram, exact))
}

func TestBetterThanScoreBreaksTies(t *testing.T) {
	high := candidate("a", MatchTrigram, 2, 0.8)
	low := candidate("a", MatchTrigram, 2, 0.4)

	assert.True(t, betterThan(high, low))
	assert.False(t, betterThan(low, high))
	assert.False(t, betterThan(high, high), "equal candidates should not replace each other")
}

func TestMergeKeepsBestVariantPerEntity(t *testing.T) {
	lists := [][]Candidate{
		{candidate("a", MatchTrigram, 2, 0.9), candidate("b", MatchLevenshtein, 1, 0.5)},
		{candidate("a", MatchExact, 6, 1.0)},
		{candidate("b", MatchSubstring, 4, 0.8), candidate("c", MatchPrefix, 5, 0.9)},
	}

	merged := mergeCandidates(lists)
	require.Len(t, merged, 3)
	assert.Equal(t, MatchExact, merged["a"].Type)
	assert.Equal(t, MatchSubstring, merged["b"].Type)
	assert.Equal(t, MatchPrefix, merged["c"].Type)
}

func TestMergeOrderIndependent(t *testing.T) {
	forward := [][]Candidate{
		{candidate("a", MatchExact, 6, 1.0)},
		{candidate("a", MatchTrigram, 2, 0.9)},
	}
	backward := [][]Candidate{
		{candidate("a", MatchTrigram, 2, 0.9)},
		{candidate("a", MatchExact, 6, 1.0)},
	}

	assert.Equal(t, mergeCandidates(forward)["a"], mergeCandidates(backward)["a"])
}
