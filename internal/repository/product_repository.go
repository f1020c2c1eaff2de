package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Partial update: only non-nil fields are persisted.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int64
	Category    *string
	Image       *string
}

// 商品 persistence only; stock arithmetic lives in InventoryRepository.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListByShopID(ctx context.Context, shopID int64) ([]model.Product, error)
	//all products across the merchant's shops, newest first
	ListByMerchantID(ctx context.Context, merchantID int64) ([]model.Product, error)
	//resolve several ids at once for cart snapshots; missing ids are
	//simply absent from the result
	FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	UpdateFields(ctx context.Context, id int64, patch ProductPatch) error
	Delete(ctx context.Context, id int64) error
	IsOwnedByMerchant(ctx context.Context, productID int64, merchantID int64) (bool, error)
}
