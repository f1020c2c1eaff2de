package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type NotificationUsecase struct {
	notificationRepo repo.NotificationRepository
}

func NewNotificationUsecase(notificationRepo repo.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notificationRepo: notificationRepo}
}

// ListMine returns the customer's most recent notifications.
func (u *NotificationUsecase) ListMine(ctx context.Context, customerID int64, limit int) ([]model.Notification, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	items, err := u.notificationRepo.ListByRecipientID(ctx, customerID, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
