// file: internal/database/sqlite_store.go
// version: 2.4.0
// guid: 1e6b9d4a-8c3f-4e2b-9a7d-5f1c8e3b6a92

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mfigueroa/stockroom/internal/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const shopSelectColumns = `id, name, currency, created_at, updated_at`

const productSelectColumns = `
	id, shop_id, category_id, name, sku,
	price_cents, stock_quantity, created_at, updated_at
`

const categorySelectColumns = `
	c.id, c.shop_id, c.name, c.description, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count
`

func scanShop(scanner rowScanner, shop *models.Shop) error {
	return scanner.Scan(&shop.ID, &shop.Name, &shop.Currency, &shop.CreatedAt, &shop.UpdatedAt)
}

func scanProduct(scanner rowScanner, product *models.Product) error {
	return scanner.Scan(
		&product.ID, &product.ShopID, &product.CategoryID, &product.Name,
		&product.SKU, &product.PriceCents, &product.StockQuantity,
		&product.CreatedAt, &product.UpdatedAt,
	)
}

func scanCategory(scanner rowScanner, category *models.Category) error {
	return scanner.Scan(
		&category.ID, &category.ShopID, &category.Name, &category.Description,
		&category.CreatedAt, &category.UpdatedAt, &category.ProductCount,
	)
}

// SQLiteStore implements the Store interface using SQLite3
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store. The connection uses the
// registered driver variant so similarity() and editdist() are available
// to matching queries.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	registerDriver()

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// createTables creates all required tables
func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shops (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		currency TEXT NOT NULL DEFAULT 'USD',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		shop_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (shop_id) REFERENCES shops(id) ON DELETE CASCADE,
		UNIQUE(shop_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_categories_shop_name ON categories(shop_id, name);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		shop_id TEXT NOT NULL,
		category_id TEXT,
		name TEXT NOT NULL,
		sku TEXT,
		price_cents INTEGER NOT NULL DEFAULT 0,
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (shop_id) REFERENCES shops(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_shop_name ON products(shop_id, name);
	CREATE INDEX IF NOT EXISTS idx_products_shop_sku ON products(shop_id, sku);
	CREATE INDEX IF NOT EXISTS idx_products_shop_category ON products(shop_id, category_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// newID generates a ULID for new rows
func newID() string {
	return ulid.Make().String()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset drops all rows from all tables. Used by tests and the reset command.
func (s *SQLiteStore) Reset() error {
	for _, table := range []string{"products", "categories", "shops"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to reset table %s: %w", table, err)
		}
	}
	return nil
}

// --- Shops ---

func (s *SQLiteStore) CreateShop(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if shop.ID == "" {
		shop.ID = newID()
	}
	if shop.Currency == "" {
		shop.Currency = "USD"
	}
	now := time.Now().UTC()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shops (id, name, currency, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		shop.ID, shop.Name, shop.Currency, shop.CreatedAt, shop.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	return shop, nil
}

func (s *SQLiteStore) GetShopByID(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	row := s.db.QueryRowContext(ctx, `SELECT `+shopSelectColumns+` FROM shops WHERE id = ?`, id)
	if err := scanShop(row, &shop); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

func (s *SQLiteStore) ListShops(ctx context.Context, limit, offset int) ([]models.Shop, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shopSelectColumns+` FROM shops ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []models.Shop{}
	for rows.Next() {
		var shop models.Shop
		if err := scanShop(rows, &shop); err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

func (s *SQLiteStore) UpdateShop(ctx context.Context, id string, shop *models.Shop) (*models.Shop, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shops SET name = ?, currency = ?, updated_at = ? WHERE id = ?`,
		shop.Name, shop.Currency, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update shop: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetShopByID(ctx, id)
}

func (s *SQLiteStore) DeleteShop(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Categories ---

func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == "" {
		category.ID = newID()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, shop_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID, category.ShopID, category.Name, category.Description,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return s.GetCategoryByID(ctx, category.ID)
}

func (s *SQLiteStore) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categorySelectColumns+` FROM categories c WHERE c.id = ?`, id)
	if err := scanCategory(row, &category); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *SQLiteStore) UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		category.Name, category.Description, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetCategoryByID(ctx, id)
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Products ---

func (s *SQLiteStore) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == "" {
		product.ID = newID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, shop_id, category_id, name, sku, price_cents, stock_quantity, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.ShopID, product.CategoryID, product.Name, product.SKU,
		product.PriceCents, product.StockQuantity, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *SQLiteStore) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productSelectColumns+` FROM products WHERE id = ?`, id)
	if err := scanProduct(row, &product); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *SQLiteStore) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET category_id = ?, name = ?, sku = ?, price_cents = ?, stock_quantity = ?, updated_at = ?
		 WHERE id = ?`,
		product.CategoryID, product.Name, product.SKU, product.PriceCents,
		product.StockQuantity, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetProductByID(ctx, id)
}

func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Dashboard ---

func (s *SQLiteStore) GetDashboardStats(ctx context.Context, shopID string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(stock_quantity), 0),
		       COALESCE(SUM(price_cents * stock_quantity), 0),
		       COALESCE(SUM(CASE WHEN stock_quantity = 0 THEN 1 ELSE 0 END), 0)
		FROM products WHERE shop_id = ?`, shopID).
		Scan(&stats.ProductCount, &stats.TotalStockUnits, &stats.InventoryValueCents, &stats.OutOfStockProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute product stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE shop_id = ?`, shopID).
		Scan(&stats.CategoryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	return stats, nil
}

// EscapeLike escapes LIKE wildcards and the escape character itself so user
// input can be embedded in a pattern safely.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
