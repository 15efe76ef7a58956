// file: internal/server/shop_service.go
// version: 1.1.0
// guid: 1b6e4a9d-7c2f-4d8b-9a3e-5f8c1b6d4a72

package server

import (
	"context"
	"fmt"

	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/models"
)

// ShopService handles shop (tenant) business logic
type ShopService struct {
	store database.Store
}

// NewShopService creates a new ShopService instance
func NewShopService(store database.Store) *ShopService {
	return &ShopService{store: store}
}

func (svc *ShopService) List(ctx context.Context, limit, offset int) ([]models.Shop, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return svc.store.ListShops(ctx, limit, offset)
}

func (svc *ShopService) Create(ctx context.Context, req CreateShopRequest) (*models.Shop, error) {
	shop := &models.Shop{Name: req.Name, Currency: req.Currency}
	created, err := svc.store.CreateShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}
	return created, nil
}

func (svc *ShopService) Get(ctx context.Context, id string) (*models.Shop, error) {
	return svc.store.GetShopByID(ctx, id)
}

func (svc *ShopService) Update(ctx context.Context, id string, req UpdateShopRequest) (*models.Shop, error) {
	shop := &models.Shop{Name: req.Name, Currency: req.Currency}
	return svc.store.UpdateShop(ctx, id, shop)
}

func (svc *ShopService) Delete(ctx context.Context, id string) error {
	return svc.store.DeleteShop(ctx, id)
}

// Dashboard returns the shop's inventory and finance summary.
func (svc *ShopService) Dashboard(ctx context.Context, id string) (*database.DashboardStats, error) {
	if _, err := svc.store.GetShopByID(ctx, id); err != nil {
		return nil, err
	}
	return svc.store.GetDashboardStats(ctx, id)
}
