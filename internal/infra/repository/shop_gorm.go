package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

func (r *ShopGormRepository) Create(ctx context.Context, shop model.Shop) (model.Shop, error) {
	if err := r.db.WithContext(ctx).Create(&shop).Error; err != nil {
		return model.Shop{}, err
	}
	return shop, nil
}

func (r *ShopGormRepository) FindByID(ctx context.Context, shopID int64) (model.Shop, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).Where("id = ?", shopID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shop{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shop{}, err
	}
	return s, nil
}

func (r *ShopGormRepository) ListByMerchantID(ctx context.Context, merchantID int64) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("id desc").
		Find(&shops).Error
	if err != nil {
		return []model.Shop{}, err
	}
	return shops, nil
}

func (r *ShopGormRepository) Update(ctx context.Context, shop model.Shop) error {
	res := r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("id = ?", shop.ID).
		Updates(map[string]interface{}{
			"name":        shop.Name,
			"description": shop.Description,
			"image":       shop.Image,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ShopGormRepository) SetQRCodePath(ctx context.Context, shopID int64, path string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("id = ?", shopID).
		Update("qr_code_path", path)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ShopGormRepository) IsOwnedByMerchant(ctx context.Context, shopID int64, merchantID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("id = ? AND merchant_id = ?", shopID, merchantID).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Most-ordered shops first; with a query, a name LIKE filter on top.
func (r *ShopGormRepository) Search(ctx context.Context, query string, limit int) ([]repo.ShopWithOrderCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).
		Table("shops").
		Select("shops.*, count(orders.id) as order_count").
		Joins("left join orders on orders.shop_id = shops.id").
		Group("shops.id").
		Order("order_count desc").
		Limit(limit)

	if query != "" {
		q = q.Where("shops.name LIKE ?", "%"+query+"%")
	}

	var rows []repo.ShopWithOrderCount
	if err := q.Find(&rows).Error; err != nil {
		return []repo.ShopWithOrderCount{}, err
	}
	return rows, nil
}

// Dashboard numbers, one query each. Day and week boundaries are
// computed here so the SQL stays portable; the week starts Monday.
func (r *ShopGormRepository) Stats(ctx context.Context, merchantID int64) (repo.MerchantStats, error) {
	var out repo.MerchantStats

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("orders").
			Joins("join shops on shops.id = orders.shop_id").
			Where("shops.merchant_id = ?", merchantID)
	}

	err := base().
		Where("orders.created_at >= ?", today).
		Select("coalesce(sum(orders.total), 0)").
		Scan(&out.SalesToday).Error
	if err != nil {
		return repo.MerchantStats{}, err
	}

	err = base().
		Where("orders.created_at >= ?", weekStart).
		Select("coalesce(sum(orders.total), 0)").
		Scan(&out.SalesThisWeek).Error
	if err != nil {
		return repo.MerchantStats{}, err
	}

	if err := base().Count(&out.OrderCount).Error; err != nil {
		return repo.MerchantStats{}, err
	}

	err = r.db.WithContext(ctx).
		Table("products").
		Joins("join shops on shops.id = products.shop_id").
		Where("shops.merchant_id = ?", merchantID).
		Count(&out.ProductCount).Error
	if err != nil {
		return repo.MerchantStats{}, err
	}

	return out, nil
}
