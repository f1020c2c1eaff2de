package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
)

func newPaymentTestRig() (*PaymentUsecase, *MockPaymentRepository, *MockOrderRepository, *MockGateway, *recordingNotifier) {
	paymentRepo := new(MockPaymentRepository)
	orderRepo := new(MockOrderRepository)
	gw := new(MockGateway)
	notif := &recordingNotifier{}

	gateways := map[model.PaymentMethod]payment.Gateway{
		model.PaymentMethodMobileMoney: gw,
		model.PaymentMethodCard:        gw,
	}
	uc := NewPaymentUsecase(paymentRepo, orderRepo, gateways, notif)
	return uc, paymentRepo, orderRepo, gw, notif
}

func TestInitiateMovesPaymentToAwaitingConfirmation(t *testing.T) {
	uc, paymentRepo, orderRepo, gw, _ := newPaymentTestRig()
	ctx := context.Background()

	order := model.Order{ID: 42, CustomerID: 7, Status: model.OrderStatusPending, Total: 4500, PaymentMethod: model.PaymentMethodMobileMoney}
	orderRepo.On("FindByID", ctx, int64(42)).Return(order, nil)

	paymentRepo.On("Create", ctx, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == 42 && p.Amount == 4500 && p.Status == model.PaymentStatusPending
	})).Return(model.Payment{ID: 9, OrderID: 42, Status: model.PaymentStatusPending}, nil)

	gw.On("Charge", mock.Anything, mock.MatchedBy(func(req payment.ChargeRequest) bool {
		return req.Amount == 4500 && req.Reference != ""
	})).Return(payment.ChargeResult{ProviderRef: "mm-123"}, nil)

	paymentRepo.On("MarkAwaitingConfirmation", ctx, int64(9), "mm-123").Return(true, nil)

	out, err := uc.Initiate(ctx, 7, InitiatePaymentInput{OrderID: 42, Detail: "+2250700000001"})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), out.PaymentID)
	assert.Equal(t, "mm-123", out.ProviderRef)
	assert.Equal(t, model.PaymentStatusAwaitingConf, out.Status)

	//the order itself must not move before the webhook
	orderRepo.AssertNotCalled(t, "UpdateStatusIfCurrent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A declined charge marks the payment FAILED and leaves the order
// PENDING so the customer can retry.
func TestInitiateDeclinedLeavesOrderPending(t *testing.T) {
	uc, paymentRepo, orderRepo, gw, _ := newPaymentTestRig()
	ctx := context.Background()

	order := model.Order{ID: 42, CustomerID: 7, Status: model.OrderStatusPending, Total: 4500, PaymentMethod: model.PaymentMethodCard}
	orderRepo.On("FindByID", ctx, int64(42)).Return(order, nil)
	paymentRepo.On("Create", ctx, mock.Anything).Return(model.Payment{ID: 9, OrderID: 42, Status: model.PaymentStatusPending}, nil)
	gw.On("Charge", mock.Anything, mock.Anything).Return(payment.ChargeResult{}, payment.ErrDeclined)
	paymentRepo.On("UpdateStatusIfCurrent", ctx, int64(9), model.PaymentStatusPending, model.PaymentStatusFailed).Return(true, nil)

	_, err := uc.Initiate(ctx, 7, InitiatePaymentInput{OrderID: 42, Detail: "tok_abc"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, he.Status)

	orderRepo.AssertNotCalled(t, "UpdateStatusIfCurrent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	paymentRepo.AssertExpectations(t)
}

// After a declined attempt the customer retries with the same order:
// the second attempt starts a fresh payment row, with no provider
// reference until the gateway accepts.
func TestInitiateRetriesAfterFailedAttempt(t *testing.T) {
	uc, paymentRepo, orderRepo, gw, _ := newPaymentTestRig()
	ctx := context.Background()

	order := model.Order{ID: 42, CustomerID: 7, Status: model.OrderStatusPending, Total: 4500, PaymentMethod: model.PaymentMethodMobileMoney}
	orderRepo.On("FindByID", ctx, int64(42)).Return(order, nil)

	paymentRepo.On("Create", ctx, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == 42 && p.ProviderRef == nil
	})).Return(model.Payment{ID: 9, OrderID: 42, Status: model.PaymentStatusPending}, nil).Once()
	gw.On("Charge", mock.Anything, mock.Anything).Return(payment.ChargeResult{}, payment.ErrDeclined).Once()
	paymentRepo.On("UpdateStatusIfCurrent", ctx, int64(9), model.PaymentStatusPending, model.PaymentStatusFailed).Return(true, nil).Once()

	_, err := uc.Initiate(ctx, 7, InitiatePaymentInput{OrderID: 42, Detail: "+2250700000001"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, he.Status)

	paymentRepo.On("Create", ctx, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == 42 && p.ProviderRef == nil
	})).Return(model.Payment{ID: 10, OrderID: 42, Status: model.PaymentStatusPending}, nil).Once()
	gw.On("Charge", mock.Anything, mock.Anything).Return(payment.ChargeResult{ProviderRef: "mm-456"}, nil).Once()
	paymentRepo.On("MarkAwaitingConfirmation", ctx, int64(10), "mm-456").Return(true, nil).Once()

	out, err := uc.Initiate(ctx, 7, InitiatePaymentInput{OrderID: 42, Detail: "+2250700000001"})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.PaymentID)
	assert.Equal(t, model.PaymentStatusAwaitingConf, out.Status)
	paymentRepo.AssertExpectations(t)
}

func TestInitiateRejectsSettledOrder(t *testing.T) {
	uc, paymentRepo, orderRepo, _, _ := newPaymentTestRig()
	ctx := context.Background()

	orderRepo.On("FindByID", ctx, int64(42)).Return(model.Order{ID: 42, CustomerID: 7, Status: model.OrderStatusPaid}, nil)

	_, err := uc.Initiate(ctx, 7, InitiatePaymentInput{OrderID: 42})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInitiateHidesForeignOrder(t *testing.T) {
	uc, _, orderRepo, _, _ := newPaymentTestRig()
	ctx := context.Background()

	orderRepo.On("FindByID", ctx, int64(42)).Return(model.Order{ID: 42, CustomerID: 8, Status: model.OrderStatusPending}, nil)

	_, err := uc.Initiate(ctx, 7, InitiatePaymentInput{OrderID: 42})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// Successful webhook: payment AWAITING_CONFIRMATION -> PAID, order
// PENDING -> PAID, customer notified.
func TestWebhookSuccessSettlesOrder(t *testing.T) {
	uc, paymentRepo, orderRepo, _, notif := newPaymentTestRig()
	ctx := context.Background()

	p := model.Payment{ID: 9, OrderID: 42, Status: model.PaymentStatusAwaitingConf, ProviderRef: strPtr("mm-123")}
	paymentRepo.On("FindByProviderRef", ctx, "mm-123").Return(p, nil)
	paymentRepo.On("UpdateStatusIfCurrent", ctx, int64(9), model.PaymentStatusAwaitingConf, model.PaymentStatusPaid).Return(true, nil)
	orderRepo.On("UpdateStatusIfCurrent", ctx, int64(42), model.OrderStatusPending, model.OrderStatusPaid).Return(true, nil)
	orderRepo.On("FindByID", ctx, int64(42)).Return(model.Order{ID: 42, CustomerID: 7, Status: model.OrderStatusPaid}, nil)

	err := uc.ConfirmFromWebhook(ctx, WebhookInput{Reference: "mm-123", Success: true})

	assert.NoError(t, err)
	assert.Len(t, notif.calls, 1)
	assert.Equal(t, int64(7), notif.calls[0].CustomerID)
	assert.Equal(t, model.OrderStatusPaid, notif.calls[0].Status)
}

// A replayed success webhook is a no-op: the compare-and-set refuses
// and the order is not touched again.
func TestWebhookReplayIsNoOp(t *testing.T) {
	uc, paymentRepo, orderRepo, _, notif := newPaymentTestRig()
	ctx := context.Background()

	p := model.Payment{ID: 9, OrderID: 42, Status: model.PaymentStatusPaid, ProviderRef: strPtr("mm-123")}
	paymentRepo.On("FindByProviderRef", ctx, "mm-123").Return(p, nil)
	paymentRepo.On("UpdateStatusIfCurrent", ctx, int64(9), model.PaymentStatusAwaitingConf, model.PaymentStatusPaid).Return(false, nil)

	err := uc.ConfirmFromWebhook(ctx, WebhookInput{Reference: "mm-123", Success: true})

	assert.NoError(t, err)
	assert.Empty(t, notif.calls)
	orderRepo.AssertNotCalled(t, "UpdateStatusIfCurrent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Failure webhook fails the payment but never the order.
func TestWebhookFailureKeepsOrderPending(t *testing.T) {
	uc, paymentRepo, orderRepo, _, notif := newPaymentTestRig()
	ctx := context.Background()

	p := model.Payment{ID: 9, OrderID: 42, Status: model.PaymentStatusAwaitingConf, ProviderRef: strPtr("mm-123")}
	paymentRepo.On("FindByProviderRef", ctx, "mm-123").Return(p, nil)
	paymentRepo.On("UpdateStatusIfCurrent", ctx, int64(9), model.PaymentStatusAwaitingConf, model.PaymentStatusFailed).Return(true, nil)

	err := uc.ConfirmFromWebhook(ctx, WebhookInput{Reference: "mm-123", Success: false})

	assert.NoError(t, err)
	assert.Empty(t, notif.calls)
	orderRepo.AssertNotCalled(t, "UpdateStatusIfCurrent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookUnknownReference(t *testing.T) {
	uc, paymentRepo, _, _, _ := newPaymentTestRig()
	ctx := context.Background()

	paymentRepo.On("FindByProviderRef", ctx, "ghost").Return(model.Payment{}, repo.ErrNotFound)

	err := uc.ConfirmFromWebhook(ctx, WebhookInput{Reference: "ghost", Success: true})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
