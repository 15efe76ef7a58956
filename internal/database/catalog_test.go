// file: internal/database/catalog_test.go
// version: 1.2.0
// guid: 4e7c2a9f-8b5d-4f1e-9c3a-7d2f8b4e1c69

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/stockroom/internal/models"
)

func seedCatalog(t *testing.T, store *SQLiteStore) (shopID string) {
	t.Helper()
	ctx := context.Background()
	shop := createTestShop(t, store, "Seeded Shop")

	tools, err := store.CreateCategory(ctx, &models.Category{ShopID: shop.ID, Name: "Hand Tools"})
	require.NoError(t, err)
	_, err = store.CreateCategory(ctx, &models.Category{ShopID: shop.ID, Name: "Adhesives"})
	require.NoError(t, err)

	products := []struct {
		name  string
		sku   string
		price int64
		stock int
	}{
		{"Phillips Screwdriver", "SCR-001", 1299, 8},
		{"Flathead Screwdriver", "SCR-002", 1199, 5},
		{"Screwdriver Set", "SCR-SET", 4999, 2},
		{"Hammer", "HAM-001", 1599, 12},
		{"Wood Glue", "GLU-010", 499, 30},
	}
	for _, p := range products {
		sku := p.sku
		_, err := store.CreateProduct(ctx, &models.Product{
			ShopID: shop.ID, CategoryID: &tools.ID, Name: p.name, SKU: &sku,
			PriceCents: p.price, StockQuantity: p.stock,
		})
		require.NoError(t, err)
	}
	return shop.ID
}

func matchNames(items []models.ScoredItem) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Item.Name
	}
	return names
}

func TestMatchCatalogEqual(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	items, err := store.MatchCatalog(ctx, shopID, models.KindProduct,
		MatchSpec{Op: MatchEqual, Query: "hammer", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hammer"}, matchNames(items), "equality ignores case")

	items, err = store.MatchCatalog(ctx, shopID, models.KindProduct,
		MatchSpec{Op: MatchEqual, Query: "scr-set", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Screwdriver Set"}, matchNames(items), "SKU is a match key")
}

func TestMatchCatalogPrefix(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	items, err := store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchPrefix, Query: "screw", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Screwdriver Set"}, matchNames(items))
}

func TestMatchCatalogContains(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	items, err := store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchContains, Query: "screwdriver", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Flathead Screwdriver", "Phillips Screwdriver", "Screwdriver Set"},
		matchNames(items), "name order within the strategy")
}

func TestMatchCatalogPattern(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	// The per-character wildcard pattern behind acronym matching.
	items, err := store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchPattern, Query: "wg", Pattern: "%w%g%", Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, matchNames(items), "Wood Glue")

	_, err = store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchPattern, Query: "wg", Limit: 10})
	assert.Error(t, err, "empty pattern is rejected")
}

func TestMatchCatalogSimilar(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	items, err := store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchSimilar, Query: "scrwdriver", Threshold: 0.35, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Screwdriver Set"}, matchNames(items),
		"long two-word names dilute the trigram overlap below the strict threshold")
	for _, it := range items {
		assert.GreaterOrEqual(t, it.Score, 0.35, "scores come back from the similarity function")
		assert.LessOrEqual(t, it.Score, 1.0)
	}

	// A looser threshold admits the two-word screwdrivers as well.
	items, err = store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchSimilar, Query: "scrwdriver", Threshold: 0.2, Limit: 10})
	require.NoError(t, err)
	names := matchNames(items)
	assert.Contains(t, names, "Phillips Screwdriver")
	assert.Contains(t, names, "Flathead Screwdriver")
	assert.NotContains(t, names, "Wood Glue")
}

func TestMatchCatalogDistance(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	items, err := store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchDistance, Query: "hammr", MaxDistance: 1, Limit: 10})
	require.NoError(t, err)

	require.Equal(t, []string{"Hammer"}, matchNames(items))
	assert.InDelta(t, 1-1.0/6.0, items[0].Score, 1e-9, "distance is normalized into a score")
}

func TestMatchCatalogScopedToShop(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	other := createTestShop(t, store, "Other Shop")
	_, err := store.CreateProduct(ctx, &models.Product{ShopID: other.ID, Name: "Hammer"})
	require.NoError(t, err)

	items, err := store.MatchCatalog(ctx, shopID, models.KindProduct,
		MatchSpec{Op: MatchEqual, Query: "Hammer", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, shopID, items[0].Item.ShopID)
}

func TestMatchCatalogCategories(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	items, err := store.MatchCatalog(context.Background(), shopID, models.KindCategory,
		MatchSpec{Op: MatchContains, Query: "tools", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hand Tools", items[0].Item.Name)
	assert.Equal(t, models.KindCategory, items[0].Item.Kind)
	require.NotNil(t, items[0].Item.ProductCount)
	assert.Equal(t, 5, *items[0].Item.ProductCount)
}

func TestMatchCatalogZeroLimit(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	items, err := store.MatchCatalog(context.Background(), shopID, models.KindProduct,
		MatchSpec{Op: MatchContains, Query: "screwdriver"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListCatalogItemsAndCounts(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	items, err := store.ListCatalogItems(ctx, shopID, models.KindProduct, 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	count, err := store.CountCatalog(ctx, shopID, models.KindProduct)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	count, err = store.CountCatalog(ctx, shopID, models.KindCategory)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func productNames(products []models.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func TestListProductsKeysetForward(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	page1, more, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Limit: 2,
	})
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, []string{"Flathead Screwdriver", "Hammer"}, productNames(page1))

	last := page1[len(page1)-1]
	page2, more, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Limit: 2,
		HasCursor: true, CursorValue: last.Name, CursorID: last.ID,
	})
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, []string{"Phillips Screwdriver", "Screwdriver Set"}, productNames(page2))

	last = page2[len(page2)-1]
	page3, more, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Limit: 2,
		HasCursor: true, CursorValue: last.Name, CursorID: last.ID,
	})
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, []string{"Wood Glue"}, productNames(page3))
}

func TestListProductsKeysetBackward(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	// Land on the third page, then walk back.
	forward, _, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Limit: 4,
	})
	require.NoError(t, err)
	first := forward[2] // "Phillips Screwdriver"

	back, more, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Direction: DirBackward, Limit: 2,
		HasCursor: true, CursorValue: first.Name, CursorID: first.ID,
	})
	require.NoError(t, err)
	assert.False(t, more, "only two rows precede the cursor")
	assert.Equal(t, []string{"Flathead Screwdriver", "Hammer"}, productNames(back),
		"backward pages come back in display order")
}

func TestListProductsKeysetDescendingPrice(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	page1, more, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "price_cents", Order: SortDesc, Limit: 2,
	})
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, []string{"Screwdriver Set", "Hammer"}, productNames(page1))

	last := page1[len(page1)-1]
	page2, _, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "price_cents", Order: SortDesc, Limit: 2,
		// Cursor values arrive as JSON numbers; the store normalizes them.
		HasCursor: true, CursorValue: float64(last.PriceCents), CursorID: last.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Phillips Screwdriver", "Flathead Screwdriver"}, productNames(page2))
}

func TestListProductsKeysetNameFilter(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	products, more, err := store.ListProductsKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Limit: 10, NameFilter: "screwdriver",
	})
	require.NoError(t, err)
	assert.False(t, more)
	assert.Len(t, products, 3)

	count, err := store.CountProductsFiltered(ctx, shopID, "screwdriver", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestListProductsKeysetRejectsUnknownSort(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)

	_, _, err := store.ListProductsKeyset(context.Background(), shopID, KeysetQuery{
		SortBy: "sku; DROP TABLE products", Order: SortAsc, Limit: 10,
	})
	assert.Error(t, err)
}

func TestListCategoriesKeyset(t *testing.T) {
	store := newTestStore(t)
	shopID := seedCatalog(t, store)
	ctx := context.Background()

	page1, more, err := store.ListCategoriesKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Limit: 1,
	})
	require.NoError(t, err)
	assert.True(t, more)
	require.Len(t, page1, 1)
	assert.Equal(t, "Adhesives", page1[0].Name)

	page2, more, err := store.ListCategoriesKeyset(ctx, shopID, KeysetQuery{
		SortBy: "name", Order: SortAsc, Limit: 1,
		HasCursor: true, CursorValue: page1[0].Name, CursorID: page1[0].ID,
	})
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, page2, 1)
	assert.Equal(t, "Hand Tools", page2[0].Name)

	_, _, err = store.ListCategoriesKeyset(ctx, shopID, KeysetQuery{
		SortBy: "price_cents", Order: SortAsc, Limit: 1,
	})
	assert.Error(t, err, "categories have no price column")

	count, err := store.CountCategoriesFiltered(ctx, shopID, "tools")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNormalizeCursorValue(t *testing.T) {
	assert.Equal(t, int64(42), normalizeCursorValue("price_cents", float64(42)))
	assert.Equal(t, int64(42), normalizeCursorValue("price_cents", "42"))
	assert.Equal(t, "Hammer", normalizeCursorValue("name", "Hammer"))

	norm := normalizeCursorValue("created_at", "2026-03-01T12:00:00.000000001Z")
	parsed, ok := norm.(time.Time)
	require.True(t, ok, "created_at cursors bind as time values")
	assert.Equal(t, 2026, parsed.Year())
}
