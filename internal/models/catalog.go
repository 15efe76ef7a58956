// file: internal/models/catalog.go
// version: 1.1.0
// guid: 3c8e1f5a-9b2d-4e7c-8a1f-6d4b2e9c0a53

package models

import "time"

// ItemKind distinguishes the two searchable catalog entity types.
type ItemKind string

const (
	KindProduct  ItemKind = "product"
	KindCategory ItemKind = "category"
)

// Shop represents a tenant. All catalog queries are scoped to one shop and
// never cross shop boundaries.
type Shop struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Currency  string    `json:"currency" db:"currency"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Category represents a product grouping within a shop.
type Category struct {
	ID          string    `json:"id" db:"id"`
	ShopID      string    `json:"shop_id" db:"shop_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Populated via subquery on reads, never written directly
	ProductCount int `json:"product_count" db:"product_count"`
}

// Product represents a sellable catalog item.
type Product struct {
	ID            string    `json:"id" db:"id"`
	ShopID        string    `json:"shop_id" db:"shop_id"`
	CategoryID    *string   `json:"category_id,omitempty" db:"category_id"`
	Name          string    `json:"name" db:"name"`
	SKU           *string   `json:"sku,omitempty" db:"sku"`
	PriceCents    int64     `json:"price_cents" db:"price_cents"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CatalogItem is the searchable projection shared by products and categories.
// Name is the primary matchable string; SKU is the secondary key and is only
// set for products. Display fields are passed through unmodified by search.
type CatalogItem struct {
	ID     string   `json:"id"`
	ShopID string   `json:"shop_id"`
	Kind   ItemKind `json:"kind"`
	Name   string   `json:"name"`
	SKU    *string  `json:"sku,omitempty"`

	CategoryID    *string   `json:"category_id,omitempty"`
	PriceCents    *int64    `json:"price_cents,omitempty"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
	ProductCount  *int      `json:"product_count,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ScoredItem pairs a catalog item with a store-computed match score.
// Used by the similarity and edit-distance match ops; fixed-score ops
// leave Score at zero and let the caller assign it.
type ScoredItem struct {
	Item  CatalogItem `json:"item"`
	Score float64     `json:"score"`
}

// SearchableText returns the text the precision filter checks query tokens
// against: name plus SKU when present. Case folding is the caller's job.
func (ci CatalogItem) SearchableText() string {
	if ci.SKU != nil && *ci.SKU != "" {
		return ci.Name + " " + *ci.SKU
	}
	return ci.Name
}

// ProductItem projects a product into its searchable form.
func ProductItem(p Product) CatalogItem {
	price := p.PriceCents
	stock := p.StockQuantity
	return CatalogItem{
		ID:            p.ID,
		ShopID:        p.ShopID,
		Kind:          KindProduct,
		Name:          p.Name,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		PriceCents:    &price,
		StockQuantity: &stock,
		CreatedAt:     p.CreatedAt,
	}
}

// CategoryItem projects a category into its searchable form.
func CategoryItem(c Category) CatalogItem {
	count := c.ProductCount
	return CatalogItem{
		ID:           c.ID,
		ShopID:       c.ShopID,
		Kind:         KindCategory,
		Name:         c.Name,
		ProductCount: &count,
		Description:  c.Description,
		CreatedAt:    c.CreatedAt,
	}
}
