package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByID(ctx context.Context, paymentID int64) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByProviderRef(ctx context.Context, ref string) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("provider_ref = ?", ref).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error) {
	var items []model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.Payment{}, err
	}
	return items, nil
}

// Guarded transition; replayed webhooks fall through as no-ops.
func (r *PaymentGormRepository) UpdateStatusIfCurrent(ctx context.Context, paymentID int64, from model.PaymentStatus, to model.PaymentStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, from).
		Update("status", to)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Reference and status land in the same guarded update: once the ref
// is visible to the webhook, the payment is already AWAITING_CONFIRMATION.
func (r *PaymentGormRepository) MarkAwaitingConfirmation(ctx context.Context, paymentID int64, providerRef string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"provider_ref": providerRef,
			"status":       model.PaymentStatusAwaitingConf,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
