package repository

import "context"

type InventoryRepository interface {
	// set the current stock value (merchant edit)
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// decrement only when enough stock remains; false means the order
	// line must be rejected, never clamped
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
