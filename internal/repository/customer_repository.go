package repository

import (
	"app/internal/domain/model"
	"context"
)

type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	FindByPhone(ctx context.Context, phone string) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
}
