// file: internal/server/category_service.go
// version: 1.3.0
// guid: 2c7e5a1f-8b4d-4c9e-a6f3-7d2b9e4c1a58

package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/metrics"
	"github.com/mfigueroa/stockroom/internal/models"
	"github.com/mfigueroa/stockroom/internal/pagination"
	"github.com/mfigueroa/stockroom/internal/search"
)

// CategoryService handles category business logic
type CategoryService struct {
	store  database.Store
	engine *search.Engine
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(store database.Store, engine *search.Engine) *CategoryService {
	return &CategoryService{store: store, engine: engine}
}

func (svc *CategoryService) Create(ctx context.Context, shopID string, req CreateCategoryRequest) (*models.Category, error) {
	if _, err := svc.store.GetShopByID(ctx, shopID); err != nil {
		return nil, err
	}
	category := &models.Category{
		ShopID:      shopID,
		Name:        req.Name,
		Description: req.Description,
	}
	created, err := svc.store.CreateCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (svc *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return svc.store.GetCategoryByID(ctx, id)
}

func (svc *CategoryService) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	return svc.store.UpdateCategory(ctx, id, category)
}

func (svc *CategoryService) Delete(ctx context.Context, id string) error {
	return svc.store.DeleteCategory(ctx, id)
}

// List serves the paginated category table. Categories only sort by name or
// creation time; price and stock sorts are rejected before hitting the store.
func (svc *CategoryService) List(ctx context.Context, shopID string, req ListRequest) (*pagination.Page[models.CatalogItem], error) {
	req.Limit = pagination.ClampLimit(req.Limit)

	if useFuzzyRegime(req) {
		return svc.listFuzzy(ctx, shopID, req)
	}
	return svc.listKeyset(ctx, shopID, req)
}

func (svc *CategoryService) listKeyset(ctx context.Context, shopID string, req ListRequest) (*pagination.Page[models.CatalogItem], error) {
	column, err := sortColumn(req.SortBy)
	if err != nil {
		return nil, err
	}
	if column != "name" && column != "created_at" {
		return nil, fmt.Errorf("unsupported sort field for categories: %s", req.SortBy)
	}

	kq := database.KeysetQuery{
		SortBy:     column,
		Order:      req.SortOrder,
		Direction:  req.Direction,
		Limit:      req.Limit,
		NameFilter: strings.TrimSpace(req.Search),
	}
	if cursor, ok := decodeCursor(req.Cursor); ok {
		kq.HasCursor = true
		kq.CursorValue = cursor.SortValue
		kq.CursorID = cursor.ID
	}

	categories, more, err := svc.store.ListCategoriesKeyset(ctx, shopID, kq)
	if err != nil {
		return nil, err
	}

	items := make([]models.CatalogItem, len(categories))
	for i, cat := range categories {
		items[i] = models.CategoryItem(cat)
	}

	page := pagination.BuildKeysetPage(items, more, kq.HasCursor, req.Direction, sortValueFor(column), itemID)

	page.FilteredCount, err = svc.store.CountCategoriesFiltered(ctx, shopID, kq.NameFilter)
	if err != nil {
		return nil, err
	}
	if !kq.HasCursor {
		total, err := svc.store.CountCatalog(ctx, shopID, models.KindCategory)
		if err != nil {
			return nil, err
		}
		page.TotalCount = &total
	}
	return &page, nil
}

func (svc *CategoryService) listFuzzy(ctx context.Context, shopID string, req ListRequest) (*pagination.Page[models.CatalogItem], error) {
	fz := fuzzyConfig()
	window := pagination.WindowSize(req.Limit, fz.MaxWindow)

	results, err := svc.Search(ctx, shopID, req.Search, search.Options{
		MaxResults:     window,
		Fuzzy:          true,
		MinQueryLength: fz.MinQueryLength,
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
		total, err := svc.store.CountCatalog(ctx, shopID, models.KindCategory)
		if err != nil {
			return nil, err
		}
		page.TotalCount = &total
	}
	return &page, nil
}

// Search runs the ranked search pipeline over categories and records metrics.
func (svc *CategoryService) Search(ctx context.Context, shopID, query string, opts search.Options) ([]search.Result, error) {
	start := time.Now()
	results, err := svc.engine.Search(ctx, shopID, query, models.KindCategory, opts)
	if err != nil {
		metrics.ObserveSearchFailure(string(models.KindCategory))
		return nil, err
	}

	pipeline := "standard"
	if opts.Fuzzy {
		pipeline = "fuzzy"
	}
	metrics.ObserveSearch(string(models.KindCategory), pipeline, len(results), time.Since(start))
	return results, nil
}
