package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
)

// OrderNotifier decouples status-change side effects from the state
// machine. Implemented by notifier.Notifier.
type OrderNotifier interface {
	OrderStatusChanged(customerID int64, orderID int64, status model.OrderStatus)
}

// chargeTimeout bounds every outbound gateway call so a slow provider
// cannot pin a request goroutine.
const chargeTimeout = 15 * time.Second

type PaymentUsecase struct {
	paymentRepo repo.PaymentRepository
	orderRepo   repo.OrderRepository
	gateways    map[model.PaymentMethod]payment.Gateway
	notifier    OrderNotifier
}

func NewPaymentUsecase(
	paymentRepo repo.PaymentRepository,
	orderRepo repo.OrderRepository,
	gateways map[model.PaymentMethod]payment.Gateway,
	notifier OrderNotifier,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateways:    gateways,
		notifier:    notifier,
	}
}

type InitiatePaymentInput struct {
	OrderID int64
	// wallet number for mobile money, card token for cards
	Detail string
}

type InitiatePaymentOutput struct {
	PaymentID   int64               `json:"payment_id"`
	ProviderRef string              `json:"provider_ref"`
	Status      model.PaymentStatus `json:"status"`
}

// Initiate starts a payment attempt for a PENDING order. Initiation is
// asynchronous: success here only means the provider accepted the
// charge; the order stays PENDING until the webhook confirms. A failed
// attempt marks the payment FAILED and leaves the order PENDING so the
// customer can retry, possibly with the other method.
func (u *PaymentUsecase) Initiate(ctx context.Context, customerID int64, in InitiatePaymentInput) (InitiatePaymentOutput, error) {
	if customerID <= 0 {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := u.orderRepo.FindByID(ctx, in.OrderID)
	if err == repo.ErrNotFound {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.CustomerID != customerID {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if order.Status != model.OrderStatusPending {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusConflict, "order already paid")
	}

	gw, ok := u.gateways[order.PaymentMethod]
	if !ok {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	p, err := u.paymentRepo.Create(ctx, model.Payment{
		OrderID: order.ID,
		Method:  order.PaymentMethod,
		Amount:  order.Total,
		Status:  model.PaymentStatusPending,
		Detail:  in.Detail,
	})
	if err != nil {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	chargeCtx, cancel := context.WithTimeout(ctx, chargeTimeout)
	defer cancel()

	result, err := gw.Charge(chargeCtx, payment.ChargeRequest{
		Reference: uuid.NewString(),
		Amount:    order.Total,
		Detail:    in.Detail,
	})
	if err != nil {
		if _, uerr := u.paymentRepo.UpdateStatusIfCurrent(ctx, p.ID, model.PaymentStatusPending, model.PaymentStatusFailed); uerr != nil {
			return InitiatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if errors.Is(err, payment.ErrDeclined) {
			return InitiatePaymentOutput{}, NewHTTPError(http.StatusPaymentRequired, "payment declined")
		}
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider unavailable")
	}

	// ref and transition in one update: the webhook cannot find the
	// payment before it is AWAITING_CONFIRMATION
	moved, err := u.paymentRepo.MarkAwaitingConfirmation(ctx, p.ID, result.ProviderRef)
	if err != nil {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !moved {
		return InitiatePaymentOutput{}, NewHTTPError(http.StatusConflict, "payment already settled")
	}

	return InitiatePaymentOutput{
		PaymentID:   p.ID,
		ProviderRef: result.ProviderRef,
		Status:      model.PaymentStatusAwaitingConf,
	}, nil
}

type WebhookInput struct {
	Reference string
	Success   bool
}

// ConfirmFromWebhook settles a payment from the provider callback. The
// transition is a compare-and-set, so a replayed webhook is a no-op and
// a success racing a failure resolves to whichever lands first.
func (u *PaymentUsecase) ConfirmFromWebhook(ctx context.Context, in WebhookInput) error {
	if in.Reference == "" {
		return NewHTTPError(http.StatusBadRequest, "reference required")
	}

	p, err := u.paymentRepo.FindByProviderRef(ctx, in.Reference)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !in.Success {
		if _, err := u.paymentRepo.UpdateStatusIfCurrent(ctx, p.ID, model.PaymentStatusAwaitingConf, model.PaymentStatusFailed); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		// order untouched: still PENDING, retry allowed
		return nil
	}

	moved, err := u.paymentRepo.UpdateStatusIfCurrent(ctx, p.ID, model.PaymentStatusAwaitingConf, model.PaymentStatusPaid)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !moved {
		// replay or already settled either way
		return nil
	}

	movedOrder, err := u.orderRepo.UpdateStatusIfCurrent(ctx, p.OrderID, model.OrderStatusPending, model.OrderStatusPaid)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if movedOrder {
		order, err := u.orderRepo.FindByID(ctx, p.OrderID)
		if err == nil {
			u.notifier.OrderStatusChanged(order.CustomerID, order.ID, model.OrderStatusPaid)
		}
	}
	return nil
}

// ListForOrder returns the attempts for one of the customer's orders.
func (u *PaymentUsecase) ListForOrder(ctx context.Context, customerID int64, orderID int64) ([]model.Payment, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.CustomerID != customerID {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}

	payments, err := u.paymentRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return payments, nil
}
