package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// Order row joined with display names for merchant listings.
type MerchantOrderRow struct {
	model.Order
	CustomerName string `json:"customer_name"`
	ShopName     string `json:"shop_name"`
}

type MerchantOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//compare-and-set: succeeds only when the current status matches
	//from; affected row count is the success signal
	UpdateStatusIfCurrent(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error)

	//same key, same result
	FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error)

	//orders across all shops of one merchant
	ListByMerchantID(ctx context.Context, merchantID int64, f MerchantOrderListFilter) ([]MerchantOrderRow, int64, error)
	IsOwnedByMerchant(ctx context.Context, orderID int64, merchantID int64) (bool, error)
}
