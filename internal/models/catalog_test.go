// file: internal/models/catalog_test.go
// version: 1.1.0
// guid: 8f4c2e7b-3d9a-4b5e-8a1c-6f3b9d2e5c78

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchableText(t *testing.T) {
	sku := "SCR-001"
	withSKU := CatalogItem{Name: "Phillips Screwdriver", SKU: &sku}
	assert.Equal(t, "Phillips Screwdriver SCR-001", withSKU.SearchableText())

	withoutSKU := CatalogItem{Name: "Hand Tools"}
	assert.Equal(t, "Hand Tools", withoutSKU.SearchableText())

	empty := ""
	emptySKU := CatalogItem{Name: "Hammer", SKU: &empty}
	assert.Equal(t, "Hammer", emptySKU.SearchableText())
}

func TestProductItemProjection(t *testing.T) {
	sku := "HAM-001"
	catID := "cat-1"
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := Product{
		ID: "p1", ShopID: "s1", CategoryID: &catID, Name: "Hammer", SKU: &sku,
		PriceCents: 1599, StockQuantity: 12, CreatedAt: created,
	}

	item := ProductItem(p)
	assert.Equal(t, "p1", item.ID)
	assert.Equal(t, KindProduct, item.Kind)
	assert.Equal(t, "Hammer", item.Name)
	require.NotNil(t, item.PriceCents)
	assert.Equal(t, int64(1599), *item.PriceCents)
	require.NotNil(t, item.StockQuantity)
	assert.Equal(t, 12, *item.StockQuantity)
	assert.Equal(t, created, item.CreatedAt)
	assert.Nil(t, item.ProductCount)
}

func TestCategoryItemProjection(t *testing.T) {
	desc := "Hand tools"
	c := Category{
		ID: "c1", ShopID: "s1", Name: "Tools", Description: &desc, ProductCount: 4,
	}

	item := CategoryItem(c)
	assert.Equal(t, KindCategory, item.Kind)
	require.NotNil(t, item.ProductCount)
	assert.Equal(t, 4, *item.ProductCount)
	assert.Nil(t, item.SKU)
	assert.Nil(t, item.PriceCents)
}
