package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	cartRepo      repo.CartRepository
	shopRepo      repo.ShopRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	cartRepo repo.CartRepository,
	shopRepo repo.ShopRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		cartRepo:      cartRepo,
		shopRepo:      shopRepo,
	}
}

type PlaceOrderInput struct {
	ShopID         int64
	PaymentMethod  model.PaymentMethod
	IdempotencyKey string
}

type PlaceOrderOutput struct {
	OrderID int64             `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
	Total   int64             `json:"total"`
}

// PlaceOrder converts the active cart into an order. The whole unit
// runs in one transaction: stock decrements, order header, lines and
// cart clearing commit together or not at all. A line whose stock
// cannot cover the quantity rejects the order; stock is never clamped.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if customerID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ShopID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shop_id")
	}
	if in.PaymentMethod != model.PaymentMethodMobileMoney && in.PaymentMethod != model.PaymentMethodCard {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	// Replay outside the transaction: a repeated key returns the order
	// it already created, without touching stock again.
	if existing, found, err := u.orderRepo.FindByIdempotencyKey(ctx, customerID, key); err != nil {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	} else if found {
		return PlaceOrderOutput{OrderID: existing.ID, Status: existing.Status, Total: existing.Total}, nil
	}

	if _, err := u.shopRepo.FindByID(ctx, in.ShopID); err != nil {
		if err == repo.ErrNotFound {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shop_id")
		}
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByCustomerID(ctx, customerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return err
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}

		// Vanished products drop out of the snapshot here, exactly as
		// they do on the cart page.
		var total int64 = 0
		lines := make([]model.OrderItem, 0, len(items))
		for _, it := range items {
			p, ok := products[it.ProductID]
			if !ok {
				continue
			}
			lines = append(lines, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            it.Quantity,
			})
			total += p.Price * it.Quantity
		}

		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		for _, line := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "insufficient stock")
			}
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:     customerID,
			ShopID:         in.ShopID,
			Status:         model.OrderStatusPending,
			Total:          total,
			PaymentMethod:  in.PaymentMethod,
			IdempotencyKey: key,
		})
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, lines); err != nil {
			return err
		}

		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
			return err
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return err
		}

		out = PlaceOrderOutput{OrderID: orderID, Status: model.OrderStatusPending, Total: total}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return PlaceOrderOutput{}, err
		}
		// Concurrent submits with the same key: the loser's insert hits
		// the unique index and its transaction rolls back (stock
		// restored); the winner's order is the answer for both.
		if existing, found, ferr := u.orderRepo.FindByIdempotencyKey(ctx, customerID, key); ferr == nil && found {
			return PlaceOrderOutput{OrderID: existing.ID, Status: existing.Status, Total: existing.Total}, nil
		}
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}

type OrderListOutput struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64, page int, limit int) (OrderListOutput, error) {
	if customerID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := u.orderRepo.ListByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderListOutput{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

type OrderDetailOutput struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// GetMyOrderDetail scopes to the requesting customer; other customers'
// orders read as not found.
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, customerID int64, orderID int64) (OrderDetailOutput, error) {
	if customerID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.CustomerID != customerID {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderDetailOutput{Order: order, Items: items}, nil
}
