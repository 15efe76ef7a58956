// file: internal/server/handlers.go
// version: 1.3.0
// guid: 8c4f2e9b-6a3d-4f7e-b1c8-9d5a3f7e2b64

package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-sqlite3"

	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/models"
	"github.com/mfigueroa/stockroom/internal/search"
)

// respondStoreError maps store errors onto HTTP responses.
func respondStoreError(c *gin.Context, err error, resourceType, id string) {
	if errors.Is(err, database.ErrNotFound) {
		RespondWithNotFound(c, resourceType, id)
		return
	}
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
		RespondWithConflict(c, resourceType+" violates a uniqueness constraint")
		return
	}
	RespondWithInternalError(c, err.Error())
}

// parseListRequest extracts the shared pagination parameters.
func parseListRequest(c *gin.Context) ListRequest {
	req := ListRequest{
		Cursor:    c.Query("cursor"),
		Direction: database.DirForward,
		SortBy:    c.Query("sort_by"),
		SortOrder: database.SortAsc,
		Search:    c.Query("q"),
		Fuzzy:     true,
	}
	if c.Query("direction") == "prev" {
		req.Direction = database.DirBackward
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		req.Limit = limit
	}
	if strings.EqualFold(c.Query("order"), "desc") {
		req.SortOrder = database.SortDesc
	}
	if v := c.Query("category_id"); v != "" {
		req.CategoryID = &v
	}
	if v := c.Query("fuzzy"); v != "" {
		req.Fuzzy = v != "false" && v != "0"
	}
	return req
}

// parseSearchOptions extracts the ranked search parameters.
func parseSearchOptions(c *gin.Context) search.Options {
	fz := fuzzyConfig()
	opts := search.Options{
		Fuzzy:          fz.Enabled,
		MinQueryLength: fz.MinQueryLength,
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		opts.MaxResults = limit
	}
	if v := c.Query("fuzzy"); v != "" {
		opts.Fuzzy = opts.Fuzzy && v != "false" && v != "0"
	}
	if v := c.Query("low_latency"); v == "true" || v == "1" {
		opts.LowLatency = true
	}
	if v := c.Query("category_id"); v != "" {
		opts.CategoryID = &v
	}
	if v := c.Query("created_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			opts.CreatedAfter = &t
		}
	}
	if v := c.Query("created_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			opts.CreatedBefore = &t
		}
	}
	return opts
}

// --- Shops ---

func (s *Server) listShops(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	shops, err := s.shops.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondWithInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Shop]{Items: shops, Count: len(shops)})
}

func (s *Server) createShop(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, "name", err.Error())
		return
	}
	shop, err := s.shops.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err, "shop", "")
		return
	}
	c.JSON(http.StatusCreated, shop)
}

func (s *Server) getShop(c *gin.Context) {
	id := c.Param("id")
	shop, err := s.shops.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "shop", id)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (s *Server) updateShop(c *gin.Context) {
	id := c.Param("id")
	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, "name", err.Error())
		return
	}
	shop, err := s.shops.Update(c.Request.Context(), id, req)
	if err != nil {
		respondStoreError(c, err, "shop", id)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (s *Server) deleteShop(c *gin.Context) {
	id := c.Param("id")
	if err := s.shops.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "shop", id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getDashboard(c *gin.Context) {
	id := c.Param("id")
	stats, err := s.shops.Dashboard(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "shop", id)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// --- Products ---

func (s *Server) listProducts(c *gin.Context) {
	shopID := c.Param("id")
	req := parseListRequest(c)

	page, err := s.products.List(c.Request.Context(), shopID, req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "unsupported sort field") {
			RespondWithBadRequest(c, err.Error())
			return
		}
		respondStoreError(c, err, "shop", shopID)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) createProduct(c *gin.Context) {
	shopID := c.Param("id")
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, "name", err.Error())
		return
	}
	product, err := s.products.Create(c.Request.Context(), shopID, req)
	if err != nil {
		respondStoreError(c, err, "product", "")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) searchProducts(c *gin.Context) {
	shopID := c.Param("id")
	query := c.Query("q")
	opts := parseSearchOptions(c)

	results, err := s.products.Search(c.Request.Context(), shopID, query, opts)
	if err != nil {
		RespondWithInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
		Fuzzy:   opts.Fuzzy,
	})
}

func (s *Server) suggestProducts(c *gin.Context) {
	shopID := c.Param("id")
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	suggestions, err := s.products.Suggest(c.Request.Context(), shopID, query, limit)
	if err != nil {
		RespondWithInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, SuggestResponse{Query: query, Suggestions: suggestions})
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")
	product, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "product", id)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	id := c.Param("id")
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, "name", err.Error())
		return
	}
	product, err := s.products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondStoreError(c, err, "product", id)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "product", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Categories ---

func (s *Server) listCategories(c *gin.Context) {
	shopID := c.Param("id")
	req := parseListRequest(c)

	page, err := s.categories.List(c.Request.Context(), shopID, req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "unsupported sort field") {
			RespondWithBadRequest(c, err.Error())
			return
		}
		respondStoreError(c, err, "shop", shopID)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) createCategory(c *gin.Context) {
	shopID := c.Param("id")
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, "name", err.Error())
		return
	}
	category, err := s.categories.Create(c.Request.Context(), shopID, req)
	if err != nil {
		respondStoreError(c, err, "category", "")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) searchCategories(c *gin.Context) {
	shopID := c.Param("id")
	query := c.Query("q")
	opts := parseSearchOptions(c)

	results, err := s.categories.Search(c.Request.Context(), shopID, query, opts)
	if err != nil {
		RespondWithInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
		Fuzzy:   opts.Fuzzy,
	})
}

func (s *Server) getCategory(c *gin.Context) {
	id := c.Param("id")
	category, err := s.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "category", id)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	id := c.Param("id")
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, "name", err.Error())
		return
	}
	category, err := s.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		respondStoreError(c, err, "category", id)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := s.categories.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "category", id)
		return
	}
	c.Status(http.StatusNoContent)
}
