// file: internal/database/store.go
// version: 2.1.0
// guid: 8a9b0c1d-3e4f-4a5b-8c7d-2e9f0a1b3c5d

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfigueroa/stockroom/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for catalog persistence and the tabular
// matching capability the search engine runs against.
type Store interface {
	// Lifecycle
	Close() error
	Reset() error

	// Shops
	CreateShop(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	GetShopByID(ctx context.Context, id string) (*models.Shop, error)
	ListShops(ctx context.Context, limit, offset int) ([]models.Shop, error)
	UpdateShop(ctx context.Context, id string, shop *models.Shop) (*models.Shop, error)
	DeleteShop(ctx context.Context, id string) error

	// Categories
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Products
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Matching capability consumed by the search engine. Results are scoped
	// to the shop, ordered by name, and capped by spec.Limit.
	MatchCatalog(ctx context.Context, shopID string, kind models.ItemKind, spec MatchSpec) ([]models.ScoredItem, error)
	CountCatalog(ctx context.Context, shopID string, kind models.ItemKind) (int, error)
	CountAll(ctx context.Context) (products, categories int, err error)
	ListCatalogItems(ctx context.Context, shopID string, kind models.ItemKind, limit int) ([]models.CatalogItem, error)

	// Keyset-paginated scans for the standard (non-fuzzy) list regime.
	// The boolean reports whether more rows exist past the returned page.
	ListProductsKeyset(ctx context.Context, shopID string, q KeysetQuery) ([]models.Product, bool, error)
	ListCategoriesKeyset(ctx context.Context, shopID string, q KeysetQuery) ([]models.Category, bool, error)
	CountProductsFiltered(ctx context.Context, shopID, nameFilter string, categoryID *string) (int, error)
	CountCategoriesFiltered(ctx context.Context, shopID, nameFilter string) (int, error)

	// Dashboard
	GetDashboardStats(ctx context.Context, shopID string) (*DashboardStats, error)
}

// DashboardStats summarizes a shop's catalog for the finance view.
type DashboardStats struct {
	ProductCount        int   `json:"product_count"`
	CategoryCount       int   `json:"category_count"`
	TotalStockUnits     int   `json:"total_stock_units"`
	InventoryValueCents int64 `json:"inventory_value_cents"`
	OutOfStockProducts  int   `json:"out_of_stock_products"`
}

// GlobalStore is the application-wide store instance
var GlobalStore Store

// InitializeStore opens the SQLite store at path and assigns it to
// GlobalStore.
func InitializeStore(path string) error {
	store, err := NewSQLiteStore(path)
	if err != nil {
		return fmt.Errorf("failed to initialize SQLite store: %w", err)
	}
	GlobalStore = store
	return nil
}

// CloseStore closes the global store
func CloseStore() error {
	if GlobalStore == nil {
		return nil
	}
	err := GlobalStore.Close()
	GlobalStore = nil
	return err
}
