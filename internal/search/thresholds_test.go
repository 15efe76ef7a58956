// file: internal/search/thresholds_test.go
// version: 1.1.0
// guid: 3f8c5e2b-9d4a-4b7e-8c1f-6e3a9d5c2f87

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityThresholdBuckets(t *testing.T) {
	tests := []struct {
		query string
		want  float64
	}{
		{"a", 0.10},
		{"ab", 0.10},
		{"abc", 0.15},
		{"abcd", 0.15},
		{"abcde", 0.25},
		{"abcdefgh", 0.25},
		{"abcdefghi", 0.35},
		{"a very long product query", 0.35},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SimilarityThreshold(tt.query), "query %q", tt.query)
	}
}

func TestSimilarityThresholdCountsRunes(t *testing.T) {
	// Two runes, six bytes.
	assert.Equal(t, 0.10, SimilarityThreshold("日本"))
}

func TestMaxEditDistanceBuckets(t *testing.T) {
	assert.Equal(t, 1, MaxEditDistance("ab"))
	assert.Equal(t, 1, MaxEditDistance("abc"))
	assert.Equal(t, 3, MaxEditDistance("abcd"))
	assert.Equal(t, 3, MaxEditDistance("screwdriver"))
}

func TestAcronymPatternWildcardsEveryCharacter(t *testing.T) {
	assert.Equal(t, "%p%1%", acronymPattern("p1"))
	assert.Equal(t, "%s%c%r%", acronymPattern("scr"))
}

func TestAcronymPatternEscapesLikeMetacharacters(t *testing.T) {
	assert.Equal(t, `%5%\%%`, acronymPattern("5%"))
	assert.Equal(t, `%a%\_%b%`, acronymPattern("a_b"))
}
