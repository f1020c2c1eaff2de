package repository

import (
	"app/internal/domain/model"
	"context"
)

// Partial profile update, only supplied fields are written.
type MerchantPatch struct {
	Name      *string
	Phone     *string
	Address   *string
	Image     *string
	Latitude  *float64
	Longitude *float64
}

type MerchantRepository interface {
	Create(ctx context.Context, m model.Merchant) (model.Merchant, error)
	FindByID(ctx context.Context, merchantID int64) (model.Merchant, error)
	FindByEmail(ctx context.Context, email string) (model.Merchant, error)
	UpdateFields(ctx context.Context, merchantID int64, patch MerchantPatch) error
}
