package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	FindByID(ctx context.Context, paymentID int64) (model.Payment, error)
	FindByProviderRef(ctx context.Context, ref string) (model.Payment, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error)

	//compare-and-set, same contract as OrderRepository.UpdateStatusIfCurrent
	UpdateStatusIfCurrent(ctx context.Context, paymentID int64, from model.PaymentStatus, to model.PaymentStatus) (bool, error)

	//stores the provider reference and moves PENDING ->
	//AWAITING_CONFIRMATION in one guarded update, so a webhook can
	//never observe the reference on a still-PENDING payment
	MarkAwaitingConfirmation(ctx context.Context, paymentID int64, providerRef string) (bool, error)
}
