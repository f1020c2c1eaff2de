package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

// Guarded transition; rows affected is the success signal, so a replay
// or a concurrent move to another status reports false instead of
// silently overwriting.
func (r *OrderGormRepository) UpdateStatusIfCurrent(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *OrderGormRepository) FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND idempotency_key = ?", customerID, key).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderGormRepository) ListByMerchantID(ctx context.Context, merchantID int64, f repo.MerchantOrderListFilter) ([]repo.MerchantOrderRow, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).
		Table("orders").
		Joins("join shops on shops.id = orders.shop_id").
		Where("shops.merchant_id = ?", merchantID)

	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("orders.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("orders.created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []repo.MerchantOrderRow{}, 0, err
	}

	var rows []repo.MerchantOrderRow
	offset := (f.Page - 1) * f.Limit
	err := q.
		Select("orders.*, customers.name as customer_name, shops.name as shop_name").
		Joins("join customers on customers.id = orders.customer_id").
		Order("orders.id desc").
		Limit(f.Limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return []repo.MerchantOrderRow{}, 0, err
	}

	return rows, total, nil
}

func (r *OrderGormRepository) IsOwnedByMerchant(ctx context.Context, orderID int64, merchantID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("orders").
		Joins("join shops on shops.id = orders.shop_id").
		Where("orders.id = ? AND shops.merchant_id = ?", orderID, merchantID).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}
