// file: internal/server/listing.go
// version: 1.2.0
// guid: 8d3a6f1b-4e9c-4b7a-8f2e-6c1d9b4a7e36

package server

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mfigueroa/stockroom/internal/config"
	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/models"
	"github.com/mfigueroa/stockroom/internal/pagination"
)

// ListRequest carries the parsed query parameters of a paginated catalog
// listing.
type ListRequest struct {
	Cursor     string
	Direction  database.Direction
	Limit      int
	SortBy     string
	SortOrder  database.SortOrder
	Search     string
	CategoryID *string
	Fuzzy      bool
}

// sortColumn maps API sort names onto store columns.
func sortColumn(sortBy string) (string, error) {
	switch sortBy {
	case "", "name":
		return "name", nil
	case "price":
		return "price_cents", nil
	case "stock":
		return "stock_quantity", nil
	case "created_at":
		return "created_at", nil
	default:
		return "", fmt.Errorf("unsupported sort field: %s", sortBy)
	}
}

// sortValueFor extracts the cursor sort value from a catalog item for one
// store column. Times are serialized as RFC3339Nano; the store parses them
// back when binding the cursor.
func sortValueFor(column string) func(models.CatalogItem) any {
	switch column {
	case "price_cents":
		return func(it models.CatalogItem) any {
			if it.PriceCents != nil {
				return *it.PriceCents
			}
			return int64(0)
		}
	case "stock_quantity":
		return func(it models.CatalogItem) any {
			if it.StockQuantity != nil {
				return *it.StockQuantity
			}
			return 0
		}
	case "created_at":
		return func(it models.CatalogItem) any {
			return it.CreatedAt.Format(time.RFC3339Nano)
		}
	default:
		return func(it models.CatalogItem) any { return it.Name }
	}
}

// fuzzyConfig returns the fuzzy search settings with sane fallbacks applied.
func fuzzyConfig() config.FuzzySearchConfig {
	fz := config.AppConfig.FuzzySearch
	if fz.MinQueryLength <= 0 {
		fz.MinQueryLength = 2
	}
	if fz.MaxWindow <= 0 {
		fz.MaxWindow = 500
	}
	return fz
}

// useFuzzyRegime decides which pagination regime serves the request. The
// standard keyset regime handles empty queries, disabled fuzzy search, and
// queries below the minimum meaningful length; everything else goes through
// the in-memory ranked pipeline.
func useFuzzyRegime(req ListRequest) bool {
	query := strings.TrimSpace(req.Search)
	if query == "" || !req.Fuzzy {
		return false
	}
	fz := fuzzyConfig()
	if !fz.Enabled {
		return false
	}
	return utf8.RuneCountInString(query) >= fz.MinQueryLength
}

// decodeCursor parses the request cursor. Undecodable tokens mean "start
// from the beginning", never an error.
func decodeCursor(token string) (*pagination.Cursor, bool) {
	c, ok := pagination.Decode(token)
	if !ok {
		return nil, false
	}
	return &c, true
}

func itemID(it models.CatalogItem) string { return it.ID }
