// file: internal/server/product_service.go
// version: 1.4.0
// guid: 9e5c2b8f-3d7a-4e1c-8b6f-2a9d5e3c8b17

package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/metrics"
	"github.com/mfigueroa/stockroom/internal/models"
	"github.com/mfigueroa/stockroom/internal/pagination"
	"github.com/mfigueroa/stockroom/internal/search"
)

// suggestPoolSize bounds the name pool the typeahead ranks against.
const suggestPoolSize = 500

// ProductService handles product business logic
type ProductService struct {
	store  database.Store
	engine *search.Engine
}

// NewProductService creates a new ProductService instance
func NewProductService(store database.Store, engine *search.Engine) *ProductService {
	return &ProductService{store: store, engine: engine}
}

func (svc *ProductService) Create(ctx context.Context, shopID string, req CreateProductRequest) (*models.Product, error) {
	if _, err := svc.store.GetShopByID(ctx, shopID); err != nil {
		return nil, err
	}
	product := &models.Product{
		ShopID:        shopID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		SKU:           req.SKU,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
	}
	created, err := svc.store.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (svc *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return svc.store.GetProductByID(ctx, id)
}

func (svc *ProductService) Update(ctx context.Context, id string, req UpdateProductRequest) (*models.Product, error) {
	product := &models.Product{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		SKU:           req.SKU,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
	}
	return svc.store.UpdateProduct(ctx, id, product)
}

func (svc *ProductService) Delete(ctx context.Context, id string) error {
	return svc.store.DeleteProduct(ctx, id)
}

// List serves the paginated product table, selecting between the keyset
// regime and the in-memory fuzzy regime based on the request.
func (svc *ProductService) List(ctx context.Context, shopID string, req ListRequest) (*pagination.Page[models.CatalogItem], error) {
	req.Limit = pagination.ClampLimit(req.Limit)

	if useFuzzyRegime(req) {
		return svc.listFuzzy(ctx, shopID, req)
	}
	return svc.listKeyset(ctx, shopID, req)
}

func (svc *ProductService) listKeyset(ctx context.Context, shopID string, req ListRequest) (*pagination.Page[models.CatalogItem], error) {
	column, err := sortColumn(req.SortBy)
	if err != nil {
		return nil, err
	}

	kq := database.KeysetQuery{
		SortBy:     column,
		Order:      req.SortOrder,
		Direction:  req.Direction,
		Limit:      req.Limit,
		NameFilter: strings.TrimSpace(req.Search),
		CategoryID: req.CategoryID,
	}
	if cursor, ok := decodeCursor(req.Cursor); ok {
		kq.HasCursor = true
		kq.CursorValue = cursor.SortValue
		kq.CursorID = cursor.ID
	}

	products, more, err := svc.store.ListProductsKeyset(ctx, shopID, kq)
	if err != nil {
		return nil, err
	}

	items := make([]models.CatalogItem, len(products))
	for i, p := range products {
		items[i] = models.ProductItem(p)
	}

	page := pagination.BuildKeysetPage(items, more, kq.HasCursor, req.Direction, sortValueFor(column), itemID)

	page.FilteredCount, err = svc.store.CountProductsFiltered(ctx, shopID, kq.NameFilter, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !kq.HasCursor {
		total, err := svc.store.CountCatalog(ctx, shopID, models.KindProduct)
		if err != nil {
			return nil, err
		}
		page.TotalCount = &total
	}
	return &page, nil
}

func (svc *ProductService) listFuzzy(ctx context.Context, shopID string, req ListRequest) (*pagination.Page[models.CatalogItem], error) {
	fz := fuzzyConfig()
	window := pagination.WindowSize(req.Limit, fz.MaxWindow)

	results, err := svc.Search(ctx, shopID, req.Search, search.Options{
		MaxResults:     window,
		Fuzzy:          true,
		MinQueryLength: fz.MinQueryLength,
		CategoryID:     req.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.CatalogItem, len(results))
	for i, r := range results {
		items[i] = r.Item
	}

	cursor, hadCursor := decodeCursor(req.Cursor)
	page := pagination.SliceRanked(items, itemID, cursor, req.Direction, req.Limit)

	if !hadCursor {
		total, err := svc.store.CountCatalog(ctx, shopID, models.KindProduct)
		if err != nil {
			return nil, err
		}
		page.TotalCount = &total
	}
	return &page, nil
}

// Search runs the ranked search pipeline and records metrics.
func (svc *ProductService) Search(ctx context.Context, shopID, query string, opts search.Options) ([]search.Result, error) {
	start := time.Now()
	results, err := svc.engine.Search(ctx, shopID, query, models.KindProduct, opts)
	if err != nil {
		metrics.ObserveSearchFailure(string(models.KindProduct))
		return nil, err
	}

	pipeline := "standard"
	if opts.Fuzzy {
		pipeline = "fuzzy"
	}
	metrics.ObserveSearch(string(models.KindProduct), pipeline, len(results), time.Since(start))
	return results, nil
}

// Suggest returns typeahead completions: a ranked subsequence match over the
// shop's product names.
func (svc *ProductService) Suggest(ctx context.Context, shopID, query string, limit int) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Suggestion{}, nil
	}
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	pool, err := svc.store.ListCatalogItems(ctx, shopID, models.KindProduct, suggestPoolSize)
	if err != nil {
		return nil, fmt.Errorf("suggest pool: %w", err)
	}

	names := make([]string, len(pool))
	for i, item := range pool {
		names[i] = item.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	suggestions := make([]Suggestion, 0, limit)
	for _, r := range ranks {
		if len(suggestions) >= limit {
			break
		}
		suggestions = append(suggestions, catalogSuggestion(pool[r.OriginalIndex]))
	}
	return suggestions, nil
}
