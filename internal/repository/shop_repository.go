package repository

import (
	"app/internal/domain/model"
	"context"
)

// Shop row plus its order count, for the popular-shops ranking.
type ShopWithOrderCount struct {
	model.Shop
	OrderCount int64 `json:"order_count"`
}

// Dashboard numbers for a merchant.
type MerchantStats struct {
	SalesToday    int64 `json:"sales_today"`
	SalesThisWeek int64 `json:"sales_this_week"`
	OrderCount    int64 `json:"order_count"`
	ProductCount  int64 `json:"product_count"`
}

type ShopRepository interface {
	Create(ctx context.Context, shop model.Shop) (model.Shop, error)
	FindByID(ctx context.Context, shopID int64) (model.Shop, error)
	ListByMerchantID(ctx context.Context, merchantID int64) ([]model.Shop, error)
	Update(ctx context.Context, shop model.Shop) error
	SetQRCodePath(ctx context.Context, shopID int64, path string) error
	IsOwnedByMerchant(ctx context.Context, shopID int64, merchantID int64) (bool, error)

	//name search, most-ordered first; empty query returns popular shops
	Search(ctx context.Context, query string, limit int) ([]ShopWithOrderCount, error)

	Stats(ctx context.Context, merchantID int64) (MerchantStats, error)
}
