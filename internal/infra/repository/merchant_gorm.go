package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MerchantGormRepository struct {
	db *gorm.DB
}

func NewMerchantGormRepository(db *gorm.DB) *MerchantGormRepository {
	return &MerchantGormRepository{db: db}
}

func (r *MerchantGormRepository) Create(ctx context.Context, m model.Merchant) (model.Merchant, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Merchant{}, err
	}
	return m, nil
}

func (r *MerchantGormRepository) FindByID(ctx context.Context, merchantID int64) (model.Merchant, error) {
	var m model.Merchant
	err := r.db.WithContext(ctx).Where("id = ?", merchantID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Merchant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Merchant{}, err
	}
	return m, nil
}

func (r *MerchantGormRepository) FindByEmail(ctx context.Context, email string) (model.Merchant, error) {
	var m model.Merchant
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Merchant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Merchant{}, err
	}
	return m, nil
}

func (r *MerchantGormRepository) UpdateFields(ctx context.Context, merchantID int64, patch repo.MerchantPatch) error {
	updates := map[string]interface{}{}

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Latitude != nil {
		updates["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		updates["longitude"] = *patch.Longitude
	}

	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.Merchant{}).
		Where("id = ?", merchantID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
