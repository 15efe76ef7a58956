// file: internal/pagination/cursor_test.go
// version: 1.1.0
// guid: 9a5d3f7c-2e8b-4c6f-9d1a-7b4e2c8f5a63

package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{SortValue: "Hammer", ID: "01HZX"}

	token := Encode(original)
	require.NotEmpty(t, token)

	decoded, ok := Decode(token)
	require.True(t, ok)
	assert.Equal(t, "Hammer", decoded.SortValue)
	assert.Equal(t, "01HZX", decoded.ID)
}

func TestCursorNumericSortValueSurvivesAsFloat(t *testing.T) {
	token := Encode(Cursor{SortValue: int64(1299), ID: "p1"})

	decoded, ok := Decode(token)
	require.True(t, ok)
	// JSON numbers decode as float64; the store normalizes on bind.
	assert.Equal(t, float64(1299), decoded.SortValue)
}

func TestCursorIDOnly(t *testing.T) {
	token := Encode(Cursor{ID: "p1"})

	decoded, ok := Decode(token)
	require.True(t, ok)
	assert.Nil(t, decoded.SortValue)
	assert.Equal(t, "p1", decoded.ID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"not base64":  "!!!not-base64!!!",
		"not json":    base64.URLEncoding.EncodeToString([]byte("not json")),
		"missing id":  base64.URLEncoding.EncodeToString([]byte(`{"v":"x"}`)),
		"empty id":    base64.URLEncoding.EncodeToString([]byte(`{"id":""}`)),
		"json number": base64.URLEncoding.EncodeToString([]byte(`42`)),
	}
	for name, token := range cases {
		_, ok := Decode(token)
		assert.False(t, ok, "case %s should be treated as no cursor", name)
	}
}

func TestTokenIsOpaqueURLSafe(t *testing.T) {
	token := Encode(Cursor{SortValue: "name with spaces & symbols?", ID: "p1"})
	assert.NotContains(t, token, " ")
	assert.NotContains(t, token, "&")
	assert.NotContains(t, token, "?")
}
