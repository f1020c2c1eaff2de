package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) ListByShopID(ctx context.Context, shopID int64) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) ListByMerchantID(ctx context.Context, merchantID int64) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*").
		Joins("join shops on shops.id = products.shop_id").
		Where("shops.merchant_id = ?", merchantID).
		Order("products.id desc").
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

// Missing ids are simply absent from the map; the cart snapshot relies
// on that to drop vanished products without an error.
func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	out := make(map[int64]model.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []model.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	if err != nil {
		return nil, err
	}

	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Only fields supplied in the patch are written.
func (r *ProductGormRepository) UpdateFields(ctx context.Context, id int64, patch repo.ProductPatch) error {
	updates := map[string]interface{}{}

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}

	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) IsOwnedByMerchant(ctx context.Context, productID int64, merchantID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("products").
		Joins("join shops on shops.id = products.shop_id").
		Where("products.id = ? AND shops.merchant_id = ?", productID, merchantID).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}
