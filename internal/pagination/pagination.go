// file: internal/pagination/pagination.go
// version: 1.4.0
// guid: 7c3f9e5b-1a8d-4c6e-b2f9-8e5a3c7d1f42

// Package pagination provides the cursor plumbing for the two list regimes:
// keyset scans over the tabular store, and index-based slicing over an
// in-memory ranked result set produced by the fuzzy search pipeline.
package pagination

import "github.com/mfigueroa/stockroom/internal/database"

// Page is the envelope both regimes return. TotalCount is only populated on
// the first page (no cursor) to avoid a count query per page.
type Page[T any] struct {
	Items         []T     `json:"items"`
	NextCursor    *string `json:"next_cursor"`
	PrevCursor    *string `json:"prev_cursor"`
	HasNextPage   bool    `json:"has_next_page"`
	HasPrevPage   bool    `json:"has_prev_page"`
	FilteredCount int     `json:"filtered_count"`
	TotalCount    *int    `json:"total_count,omitempty"`
}

// DefaultLimit bounds page sizes when the caller passes nonsense.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ClampLimit normalizes a requested page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// WindowSize computes the oversized fuzzy-regime candidate window: at least
// ten pages worth, bounded by ceiling so one request cannot pull the whole
// catalog into memory.
func WindowSize(limit, ceiling int) int {
	window := limit * 10
	if window < 100 {
		window = 100
	}
	if ceiling > 0 && window > ceiling {
		window = ceiling
	}
	return window
}

// BuildKeysetPage assembles the page envelope for the keyset regime from a
// store scan. items is the trimmed page in display order, more reports
// whether the scan saw rows past the page, and sortValue/id extract the
// cursor fields from an item.
func BuildKeysetPage[T any](items []T, more bool, hadCursor bool, direction database.Direction, sortValue func(T) any, id func(T) string) Page[T] {
	page := Page[T]{Items: items}

	if len(items) == 0 {
		// A cursor that lands past the end still allows paging back.
		page.HasPrevPage = hadCursor
		return page
	}

	first, last := items[0], items[len(items)-1]

	if direction == database.DirBackward {
		page.HasPrevPage = more
		page.HasNextPage = true
	} else {
		page.HasNextPage = more
		page.HasPrevPage = hadCursor
	}

	if page.HasNextPage {
		token := Encode(Cursor{SortValue: sortValue(last), ID: id(last)})
		page.NextCursor = &token
	}
	if page.HasPrevPage {
		token := Encode(Cursor{SortValue: sortValue(first), ID: id(first)})
		page.PrevCursor = &token
	}
	return page
}

// SliceRanked pages over a ranked in-memory result set. The cursor id is
// located by linear scan; the page is the limit entries after (forward) or
// before (backward) that position. A cursor whose entity is no longer in the
// window restarts from the beginning. Ranked cursors are unstable across
// concurrent catalog writes, since a fresh window may rank or populate
// differently than the one the cursor came from.
func SliceRanked[T any](ranked []T, id func(T) string, cursor *Cursor, direction database.Direction, limit int) Page[T] {
	start, end := 0, limit

	if cursor != nil {
		pos := -1
		for i, item := range ranked {
			if id(item) == cursor.ID {
				pos = i
				break
			}
		}
		if pos >= 0 {
			if direction == database.DirBackward {
				end = pos
				start = pos - limit
				if start < 0 {
					start = 0
				}
			} else {
				start = pos + 1
				end = start + limit
			}
		}
	}

	if start > len(ranked) {
		start = len(ranked)
	}
	if end > len(ranked) {
		end = len(ranked)
	}

	page := Page[T]{
		Items:         ranked[start:end],
		HasPrevPage:   start > 0,
		HasNextPage:   end < len(ranked),
		FilteredCount: len(ranked),
	}
	if len(page.Items) > 0 {
		if page.HasNextPage {
			token := Encode(Cursor{ID: id(page.Items[len(page.Items)-1])})
			page.NextCursor = &token
		}
		if page.HasPrevPage {
			token := Encode(Cursor{ID: id(page.Items[0])})
			page.PrevCursor = &token
		}
	}
	return page
}
