// file: internal/database/textmatch_test.go
// version: 1.1.0
// guid: 9f3b7e1c-5d8a-4c2f-b6e9-2a7d4f8c1e53

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigramSimilarityIdenticalStrings(t *testing.T) {
	assert.Equal(t, 1.0, TrigramSimilarity("screwdriver", "screwdriver"))
	assert.Equal(t, 1.0, TrigramSimilarity("Screwdriver", "SCREWDRIVER"), "comparison is case-insensitive")
	assert.Equal(t, 1.0, TrigramSimilarity("  hammer  ", "hammer"), "surrounding whitespace is trimmed")
}

func TestTrigramSimilarityEmptyStrings(t *testing.T) {
	assert.Equal(t, 0.0, TrigramSimilarity("", "hammer"))
	assert.Equal(t, 0.0, TrigramSimilarity("hammer", ""))
	assert.Equal(t, 0.0, TrigramSimilarity("", ""))
	assert.Equal(t, 0.0, TrigramSimilarity("   ", "hammer"))
}

func TestTrigramSimilarityTypoStaysHigh(t *testing.T) {
	typo := TrigramSimilarity("screwdriver", "scrwdriver")
	unrelated := TrigramSimilarity("screwdriver", "wood glue")

	assert.Greater(t, typo, 0.35, "a dropped letter should clear the long-query threshold")
	assert.Less(t, unrelated, 0.15)
	assert.Greater(t, typo, unrelated)
}

func TestTrigramSimilaritySymmetric(t *testing.T) {
	assert.Equal(t,
		TrigramSimilarity("phillips", "philips"),
		TrigramSimilarity("philips", "phillips"))
}

func TestTrigramSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"hammer", "drill"},
		{"abc", "abcdefgh"},
		{"日本語", "日本"},
	}
	for _, p := range pairs {
		s := TrigramSimilarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0, "%q vs %q", p[0], p[1])
		assert.LessOrEqual(t, s, 1.0, "%q vs %q", p[0], p[1])
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int64
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"Hammer", "hammer", 0},
		{"screwdriver", "scrwdriver", 1},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestLevenshteinDistanceCountsRunes(t *testing.T) {
	assert.Equal(t, int64(1), LevenshteinDistance("日本語", "日本"))
}

func TestNormalizedEditScore(t *testing.T) {
	// One edit against an eleven-rune name.
	score := NormalizedEditScore(1, "screwdriver", "scrwdriver")
	assert.InDelta(t, 1-1.0/11.0, score, 1e-9)

	assert.Equal(t, 1.0, NormalizedEditScore(0, "hammer", "hammer"))
	assert.Equal(t, 0.0, NormalizedEditScore(10, "ab", "cd"), "score clamps at zero")
	assert.Equal(t, 0.0, NormalizedEditScore(0, "", ""))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c\\d`, EscapeLike(`c\d`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}
