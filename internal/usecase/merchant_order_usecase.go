package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// MerchantOrderUsecase covers the merchant side of the order
// lifecycle: listing incoming orders and moving them forward.
type MerchantOrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	notifier      OrderNotifier
}

func NewMerchantOrderUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	notifier OrderNotifier,
) *MerchantOrderUsecase {
	return &MerchantOrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		notifier:      notifier,
	}
}

type MerchantOrderListOutput struct {
	Orders []repo.MerchantOrderRow `json:"orders"`
	Total  int64                   `json:"total"`
	Page   int                     `json:"page"`
	Limit  int                     `json:"limit"`
}

func (u *MerchantOrderUsecase) ListOrders(ctx context.Context, merchantID int64, f repo.MerchantOrderListFilter) (MerchantOrderListOutput, error) {
	if merchantID <= 0 {
		return MerchantOrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status != "" {
		switch model.OrderStatus(f.Status) {
		case model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusDelivered:
		default:
			return MerchantOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}

	rows, total, err := u.orderRepo.ListByMerchantID(ctx, merchantID, f)
	if err != nil {
		return MerchantOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return MerchantOrderListOutput{Orders: rows, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (u *MerchantOrderUsecase) GetOrderDetail(ctx context.Context, merchantID int64, orderID int64) (OrderDetailOutput, error) {
	if merchantID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	owned, err := u.orderRepo.IsOwnedByMerchant(ctx, orderID, merchantID)
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderDetailOutput{Order: order, Items: items}, nil
}

// MarkPaid records an out-of-band payment (cash on pickup, transfer).
// The guarded transition makes a replayed click, or a race with the
// webhook, harmless.
func (u *MerchantOrderUsecase) MarkPaid(ctx context.Context, merchantID int64, orderID int64) error {
	return u.advance(ctx, merchantID, orderID, model.OrderStatusPending, model.OrderStatusPaid)
}

// MarkDelivered closes the order. Only PAID orders can be delivered.
func (u *MerchantOrderUsecase) MarkDelivered(ctx context.Context, merchantID int64, orderID int64) error {
	return u.advance(ctx, merchantID, orderID, model.OrderStatusPaid, model.OrderStatusDelivered)
}

func (u *MerchantOrderUsecase) advance(ctx context.Context, merchantID int64, orderID int64, from model.OrderStatus, to model.OrderStatus) error {
	if merchantID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	owned, err := u.orderRepo.IsOwnedByMerchant(ctx, orderID, merchantID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	moved, err := u.orderRepo.UpdateStatusIfCurrent(ctx, orderID, from, to)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !moved {
		return NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == nil {
		u.notifier.OrderStatusChanged(order.CustomerID, order.ID, to)
	}
	return nil
}
