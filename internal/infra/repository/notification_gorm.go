package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(ctx context.Context, n model.Notification) error {
	return r.db.WithContext(ctx).Create(&n).Error
}

func (r *NotificationGormRepository) ListByRecipientID(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var items []model.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("id desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Notification{}, err
	}
	return items, nil
}
