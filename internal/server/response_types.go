// file: internal/server/response_types.go
// version: 1.1.0
// guid: 6a1c9e3b-5d8f-4a2c-9e7b-1f4d8a3c6e95

package server

import (
	"github.com/mfigueroa/stockroom/internal/models"
	"github.com/mfigueroa/stockroom/internal/search"
)

// ListResponse is the envelope for simple (non-cursor) collection endpoints.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// SearchResponse is the envelope for the ranked search endpoints.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
	Fuzzy   bool            `json:"fuzzy"`
}

// Suggestion is one typeahead completion.
type Suggestion struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	SKU  *string `json:"sku,omitempty"`
}

// SuggestResponse is the envelope for the typeahead endpoints.
type SuggestResponse struct {
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
}

// CreateShopRequest is the payload for creating a shop.
type CreateShopRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
}

// UpdateShopRequest is the payload for updating a shop.
type UpdateShopRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest is the payload for updating a category.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	SKU           *string `json:"sku"`
	CategoryID    *string `json:"category_id"`
	PriceCents    int64   `json:"price_cents"`
	StockQuantity int     `json:"stock_quantity"`
}

// UpdateProductRequest is the payload for updating a product.
type UpdateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	SKU           *string `json:"sku"`
	CategoryID    *string `json:"category_id"`
	PriceCents    int64   `json:"price_cents"`
	StockQuantity int     `json:"stock_quantity"`
}

// catalogSuggestion converts a catalog item into its typeahead form.
func catalogSuggestion(item models.CatalogItem) Suggestion {
	return Suggestion{ID: item.ID, Name: item.Name, SKU: item.SKU}
}
