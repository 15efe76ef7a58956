// file: internal/pagination/cursor.go
// version: 1.1.0
// guid: 5e2a8c4f-7b9d-4e1a-9f6c-3d8b5a2e7c91

package pagination

import (
	"encoding/base64"
	"encoding/json"
)

// Cursor is the opaque pagination token: the sort-key value and the entity
// id of the row the scan resumes from. The fuzzy regime only uses the id.
type Cursor struct {
	SortValue any    `json:"v,omitempty"`
	ID        string `json:"id"`
}

// Encode serializes the cursor to an opaque URL-safe token.
func Encode(c Cursor) string {
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(raw)
}

// Decode parses a cursor token. Any failure (bad base64, bad JSON, missing
// id) reports ok=false, which callers treat as "no cursor" and restart from
// the beginning rather than failing the request: tokens are opaque and may
// come from an older deployment.
func Decode(token string) (Cursor, bool) {
	if token == "" {
		return Cursor{}, false
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, false
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" {
		return Cursor{}, false
	}
	return c, true
}
