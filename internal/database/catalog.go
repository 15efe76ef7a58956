// file: internal/database/catalog.go
// version: 1.5.0
// guid: 6c2e8f4b-1d7a-4c9e-b3f8-9a5d2c7e1b64

package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mfigueroa/stockroom/internal/models"
)

// MatchOp identifies one of the tabular string-matching operations the
// search strategies are built on.
type MatchOp int

const (
	// MatchEqual is case-insensitive full-string equality.
	MatchEqual MatchOp = iota
	// MatchPrefix is case-insensitive starts-with.
	MatchPrefix
	// MatchContains is case-insensitive substring.
	MatchContains
	// MatchPattern matches a caller-built LIKE pattern (ESCAPE '\').
	MatchPattern
	// MatchSimilar keeps rows whose trigram similarity meets Threshold.
	MatchSimilar
	// MatchDistance keeps rows within MaxDistance edits of the query.
	MatchDistance
)

// MatchSpec describes one matching query against the catalog. Query is the
// raw search text; Pattern is only consulted for MatchPattern; Threshold and
// MaxDistance gate the similarity and edit-distance ops respectively.
type MatchSpec struct {
	Op          MatchOp
	Query       string
	Pattern     string
	Threshold   float64
	MaxDistance int
	Limit       int
}

// MatchCatalog executes spec against the shop's products or categories.
// Results are ordered by name (then id) for a stable within-strategy order
// and capped at spec.Limit. For MatchSimilar the returned scores are the
// similarity values; for MatchDistance they are the normalized edit scores;
// all other ops return zero scores for the caller to overwrite.
func (s *SQLiteStore) MatchCatalog(ctx context.Context, shopID string, kind models.ItemKind, spec MatchSpec) ([]models.ScoredItem, error) {
	if spec.Limit <= 0 {
		return []models.ScoredItem{}, nil
	}

	switch kind {
	case models.KindProduct:
		return s.matchProducts(ctx, shopID, spec)
	case models.KindCategory:
		return s.matchCategories(ctx, shopID, spec)
	default:
		return nil, fmt.Errorf("unknown catalog kind: %s", kind)
	}
}

func (s *SQLiteStore) matchProducts(ctx context.Context, shopID string, spec MatchSpec) ([]models.ScoredItem, error) {
	scoreExpr, pred, scoreArgs, predArgs, err := buildMatchClauses(spec, "name", "sku")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, shop_id, category_id, name, sku, price_cents, stock_quantity, created_at, %s AS match_score
		FROM products
		WHERE shop_id = ? AND (%s)
		ORDER BY name COLLATE NOCASE ASC, id ASC
		LIMIT ?`, scoreExpr, pred)

	args := append(scoreArgs, shopID)
	args = append(args, predArgs...)
	args = append(args, spec.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("product match query failed: %w", err)
	}
	defer rows.Close()

	items := []models.ScoredItem{}
	for rows.Next() {
		var (
			item  models.CatalogItem
			price int64
			stock int
			raw   float64
		)
		item.Kind = models.KindProduct
		if err := rows.Scan(&item.ID, &item.ShopID, &item.CategoryID, &item.Name, &item.SKU, &price, &stock, &item.CreatedAt, &raw); err != nil {
			return nil, err
		}
		item.PriceCents = &price
		item.StockQuantity = &stock
		items = append(items, models.ScoredItem{Item: item, Score: finalizeScore(spec, raw, item.Name)})
	}
	return items, rows.Err()
}

func (s *SQLiteStore) matchCategories(ctx context.Context, shopID string, spec MatchSpec) ([]models.ScoredItem, error) {
	// Categories have no secondary key; match on name only.
	scoreExpr, pred, scoreArgs, predArgs, err := buildMatchClauses(spec, "c.name", "")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.shop_id, c.name, c.description, c.created_at,
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count,
		       %s AS match_score
		FROM categories c
		WHERE c.shop_id = ? AND (%s)
		ORDER BY c.name COLLATE NOCASE ASC, c.id ASC
		LIMIT ?`, scoreExpr, pred)

	args := append(scoreArgs, shopID)
	args = append(args, predArgs...)
	args = append(args, spec.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category match query failed: %w", err)
	}
	defer rows.Close()

	items := []models.ScoredItem{}
	for rows.Next() {
		var (
			item  models.CatalogItem
			count int
			raw   float64
		)
		item.Kind = models.KindCategory
		if err := rows.Scan(&item.ID, &item.ShopID, &item.Name, &item.Description, &item.CreatedAt, &count, &raw); err != nil {
			return nil, err
		}
		item.ProductCount = &count
		items = append(items, models.ScoredItem{Item: item, Score: finalizeScore(spec, raw, item.Name)})
	}
	return items, rows.Err()
}

// buildMatchClauses assembles the score select expression and the WHERE
// predicate for one match op. skuCol is empty for kinds without a secondary
// key. Returned arg slices bind the score expression and predicate in order.
func buildMatchClauses(spec MatchSpec, nameCol, skuCol string) (scoreExpr, pred string, scoreArgs, predArgs []interface{}, err error) {
	hasSKU := skuCol != ""

	switch spec.Op {
	case MatchEqual:
		scoreExpr = "0"
		pred = fmt.Sprintf("lower(%s) = lower(?)", nameCol)
		predArgs = append(predArgs, spec.Query)
		if hasSKU {
			pred += fmt.Sprintf(" OR (%s IS NOT NULL AND lower(%s) = lower(?))", skuCol, skuCol)
			predArgs = append(predArgs, spec.Query)
		}

	case MatchPrefix:
		scoreExpr = "0"
		pattern := EscapeLike(spec.Query) + "%"
		pred = fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, nameCol)
		predArgs = append(predArgs, pattern)
		if hasSKU {
			pred += fmt.Sprintf(` OR (%s IS NOT NULL AND %s LIKE ? ESCAPE '\')`, skuCol, skuCol)
			predArgs = append(predArgs, pattern)
		}

	case MatchContains:
		scoreExpr = "0"
		pattern := "%" + EscapeLike(spec.Query) + "%"
		pred = fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, nameCol)
		predArgs = append(predArgs, pattern)
		if hasSKU {
			pred += fmt.Sprintf(` OR (%s IS NOT NULL AND %s LIKE ? ESCAPE '\')`, skuCol, skuCol)
			predArgs = append(predArgs, pattern)
		}

	case MatchPattern:
		if spec.Pattern == "" {
			return "", "", nil, nil, fmt.Errorf("match pattern is empty")
		}
		scoreExpr = "0"
		pred = fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, nameCol)
		predArgs = append(predArgs, spec.Pattern)
		if hasSKU {
			pred += fmt.Sprintf(` OR (%s IS NOT NULL AND %s LIKE ? ESCAPE '\')`, skuCol, skuCol)
			predArgs = append(predArgs, spec.Pattern)
		}

	case MatchSimilar:
		if hasSKU {
			scoreExpr = fmt.Sprintf("max(similarity(%s, ?), coalesce(similarity(%s, ?), 0))", nameCol, skuCol)
			scoreArgs = append(scoreArgs, spec.Query, spec.Query)
			pred = fmt.Sprintf("similarity(%s, ?) >= ? OR (%s IS NOT NULL AND similarity(%s, ?) >= ?)",
				nameCol, skuCol, skuCol)
			predArgs = append(predArgs, spec.Query, spec.Threshold, spec.Query, spec.Threshold)
		} else {
			scoreExpr = fmt.Sprintf("similarity(%s, ?)", nameCol)
			scoreArgs = append(scoreArgs, spec.Query)
			pred = fmt.Sprintf("similarity(%s, ?) >= ?", nameCol)
			predArgs = append(predArgs, spec.Query, spec.Threshold)
		}

	case MatchDistance:
		if hasSKU {
			scoreExpr = fmt.Sprintf("min(editdist(%s, ?), coalesce(editdist(%s, ?), 1000000))", nameCol, skuCol)
			scoreArgs = append(scoreArgs, spec.Query, spec.Query)
			pred = fmt.Sprintf("editdist(%s, ?) <= ? OR (%s IS NOT NULL AND editdist(%s, ?) <= ?)",
				nameCol, skuCol, skuCol)
			predArgs = append(predArgs, spec.Query, spec.MaxDistance, spec.Query, spec.MaxDistance)
		} else {
			scoreExpr = fmt.Sprintf("editdist(%s, ?)", nameCol)
			scoreArgs = append(scoreArgs, spec.Query)
			pred = fmt.Sprintf("editdist(%s, ?) <= ?", nameCol)
			predArgs = append(predArgs, spec.Query, spec.MaxDistance)
		}

	default:
		return "", "", nil, nil, fmt.Errorf("unknown match op: %d", spec.Op)
	}

	return scoreExpr, pred, scoreArgs, predArgs, nil
}

// finalizeScore converts the raw score column into the strategy score. Only
// the edit-distance op needs post-processing: the column holds the raw
// distance, which is normalized against the longer of name and query.
func finalizeScore(spec MatchSpec, raw float64, name string) float64 {
	if spec.Op == MatchDistance {
		return NormalizedEditScore(int64(raw), name, spec.Query)
	}
	return raw
}

// ListCatalogItems returns up to limit items of one kind, ordered by name.
// Used by the typeahead suggestion pool.
func (s *SQLiteStore) ListCatalogItems(ctx context.Context, shopID string, kind models.ItemKind, limit int) ([]models.CatalogItem, error) {
	spec := MatchSpec{Op: MatchContains, Query: "", Limit: limit}
	scored, err := s.MatchCatalog(ctx, shopID, kind, spec)
	if err != nil {
		return nil, err
	}
	items := make([]models.CatalogItem, len(scored))
	for i, sc := range scored {
		items[i] = sc.Item
	}
	return items, nil
}

// CountCatalog returns the shop's total entity count for one kind.
func (s *SQLiteStore) CountCatalog(ctx context.Context, shopID string, kind models.ItemKind) (int, error) {
	var (
		count int
		err   error
	)
	switch kind {
	case models.KindProduct:
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM products WHERE shop_id = ?`, shopID).Scan(&count)
	case models.KindCategory:
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM categories WHERE shop_id = ?`, shopID).Scan(&count)
	default:
		return 0, fmt.Errorf("unknown catalog kind: %s", kind)
	}
	return count, err
}

// CountAll returns global product and category counts across every shop.
// Feeds the catalog size gauges.
func (s *SQLiteStore) CountAll(ctx context.Context) (products, categories int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&products); err != nil {
		return 0, 0, err
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categories); err != nil {
		return 0, 0, err
	}
	return products, categories, nil
}

// --- Keyset pagination ---

// SortOrder is the requested sort direction of the listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Direction is the pagination direction relative to the cursor.
type Direction string

const (
	DirForward  Direction = "forward"
	DirBackward Direction = "backward"
)

// KeysetQuery describes one page fetch of the standard (non-fuzzy) regime.
// CursorValue/CursorID resume the scan after (or before) a known row.
type KeysetQuery struct {
	SortBy      string // name | price_cents | stock_quantity | created_at
	Order       SortOrder
	Direction   Direction
	HasCursor   bool
	CursorValue any
	CursorID    string
	Limit       int
	NameFilter  string
	CategoryID  *string
}

var keysetSortColumns = map[string]bool{
	"name":           true,
	"price_cents":    true,
	"stock_quantity": true,
	"created_at":     true,
}

// keysetClauses derives the ORDER BY direction and the cursor comparison
// operator. Scanning continues past the cursor in scan order, so forward
// pagination over a descending sort compares with '<' and backward with '>'
// (and the reverse for ascending).
func keysetClauses(q KeysetQuery) (orderDir string, cmpOp string, err error) {
	if !keysetSortColumns[q.SortBy] {
		return "", "", fmt.Errorf("unsupported sort field: %s", q.SortBy)
	}

	ascending := q.Order != SortDesc
	if q.Direction == DirBackward {
		ascending = !ascending
	}
	if ascending {
		return "ASC", ">", nil
	}
	return "DESC", "<", nil
}

// normalizeCursorValue coerces a decoded cursor value to the bind type the
// sort column expects. Cursors round-trip through JSON, so numbers may
// arrive as float64 or string.
func normalizeCursorValue(sortBy string, value any) any {
	switch sortBy {
	case "price_cents", "stock_quantity":
		switch v := value.(type) {
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		case float64:
			return int64(v)
		}
	case "created_at":
		if v, ok := value.(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return t
			}
		}
	}
	return value
}

func (s *SQLiteStore) ListProductsKeyset(ctx context.Context, shopID string, q KeysetQuery) ([]models.Product, bool, error) {
	orderDir, cmpOp, err := keysetClauses(q)
	if err != nil {
		return nil, false, err
	}

	query := `SELECT ` + productSelectColumns + ` FROM products WHERE shop_id = ?`
	args := []interface{}{shopID}

	if q.NameFilter != "" {
		query += ` AND name LIKE ? ESCAPE '\'`
		args = append(args, "%"+EscapeLike(q.NameFilter)+"%")
	}
	if q.CategoryID != nil {
		query += ` AND category_id = ?`
		args = append(args, *q.CategoryID)
	}
	if q.HasCursor {
		query += fmt.Sprintf(` AND (%s, id) %s (?, ?)`, q.SortBy, cmpOp)
		args = append(args, normalizeCursorValue(q.SortBy, q.CursorValue), q.CursorID)
	}

	// Fetch one extra row to detect a further page.
	query += fmt.Sprintf(` ORDER BY %s %s, id %s LIMIT ?`, q.SortBy, orderDir, orderDir)
	args = append(args, q.Limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("product keyset query failed: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, false, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	more := len(products) > q.Limit
	if more {
		products = products[:q.Limit]
	}
	if q.Direction == DirBackward {
		reverseSlice(products)
	}
	return products, more, nil
}

func (s *SQLiteStore) ListCategoriesKeyset(ctx context.Context, shopID string, q KeysetQuery) ([]models.Category, bool, error) {
	orderDir, cmpOp, err := keysetClauses(q)
	if err != nil {
		return nil, false, err
	}
	if q.SortBy != "name" && q.SortBy != "created_at" {
		return nil, false, fmt.Errorf("unsupported category sort field: %s", q.SortBy)
	}

	query := `SELECT ` + categorySelectColumns + ` FROM categories c WHERE c.shop_id = ?`
	args := []interface{}{shopID}

	if q.NameFilter != "" {
		query += ` AND c.name LIKE ? ESCAPE '\'`
		args = append(args, "%"+EscapeLike(q.NameFilter)+"%")
	}
	if q.HasCursor {
		query += fmt.Sprintf(` AND (c.%s, c.id) %s (?, ?)`, q.SortBy, cmpOp)
		args = append(args, normalizeCursorValue(q.SortBy, q.CursorValue), q.CursorID)
	}

	query += fmt.Sprintf(` ORDER BY c.%s %s, c.id %s LIMIT ?`, q.SortBy, orderDir, orderDir)
	args = append(args, q.Limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("category keyset query failed: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := scanCategory(rows, &category); err != nil {
			return nil, false, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	more := len(categories) > q.Limit
	if more {
		categories = categories[:q.Limit]
	}
	if q.Direction == DirBackward {
		reverseSlice(categories)
	}
	return categories, more, nil
}

// CountProductsFiltered counts products matching the standard-regime filters.
func (s *SQLiteStore) CountProductsFiltered(ctx context.Context, shopID, nameFilter string, categoryID *string) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE shop_id = ?`
	args := []interface{}{shopID}
	if nameFilter != "" {
		query += ` AND name LIKE ? ESCAPE '\'`
		args = append(args, "%"+EscapeLike(nameFilter)+"%")
	}
	if categoryID != nil {
		query += ` AND category_id = ?`
		args = append(args, *categoryID)
	}
	var count int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// CountCategoriesFiltered counts categories matching the name filter.
func (s *SQLiteStore) CountCategoriesFiltered(ctx context.Context, shopID, nameFilter string) (int, error) {
	query := `SELECT COUNT(*) FROM categories WHERE shop_id = ?`
	args := []interface{}{shopID}
	if nameFilter != "" {
		query += ` AND name LIKE ? ESCAPE '\'`
		args = append(args, "%"+EscapeLike(nameFilter)+"%")
	}
	var count int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func reverseSlice[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
