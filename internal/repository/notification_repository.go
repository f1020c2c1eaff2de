package repository

import (
	"context"

	"app/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) error
	ListByRecipientID(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error)
}
