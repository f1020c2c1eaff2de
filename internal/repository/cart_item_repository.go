package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// delta may be negative; a resulting quantity <= 0 removes the row
	AddQuantity(ctx context.Context, cartID int64, productID int64, delta int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	IsOwnedByCustomer(ctx context.Context, cartItemID int64, customerID int64) (bool, error)
}
