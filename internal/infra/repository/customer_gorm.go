package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByPhone(ctx context.Context, phone string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}
