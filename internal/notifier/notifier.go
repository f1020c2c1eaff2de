package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// Channel delivers one message to one recipient, best effort.
type Channel interface {
	Send(ctx context.Context, customer model.Customer, message string) error
}

// Notifier persists a notification row and fans it out to the
// configured channels. Delivery runs outside the caller's request:
// failures are logged and swallowed, never surfaced to the order
// status change that triggered them.
type Notifier struct {
	notifications repo.NotificationRepository
	customers     repo.CustomerRepository
	channels      []Channel
}

func New(notifications repo.NotificationRepository, customers repo.CustomerRepository, channels ...Channel) *Notifier {
	return &Notifier{
		notifications: notifications,
		customers:     customers,
		channels:      channels,
	}
}

// OrderStatusChanged is fire-and-forget.
func (n *Notifier) OrderStatusChanged(customerID int64, orderID int64, status model.OrderStatus) {
	message := fmt.Sprintf("Votre commande #%d a été marquée comme %s.", orderID, statusLabel(status))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := n.notifications.Create(ctx, model.Notification{
			RecipientID: customerID,
			Type:        model.NotificationTypeOrder,
			Message:     message,
		}); err != nil {
			log.Printf("failed to store notification for customer %d (order %d): %v", customerID, orderID, err)
		}

		customer, err := n.customers.FindByID(ctx, customerID)
		if err != nil {
			log.Printf("failed to resolve notification recipient %d (order %d): %v", customerID, orderID, err)
			return
		}

		for _, ch := range n.channels {
			if err := ch.Send(ctx, customer, message); err != nil {
				log.Printf("notification delivery failed for customer %d (order %d): %v", customerID, orderID, err)
			}
		}
	}()
}

func statusLabel(status model.OrderStatus) string {
	switch status {
	case model.OrderStatusPaid:
		return "payée"
	case model.OrderStatusDelivered:
		return "livrée"
	default:
		return "en attente"
	}
}
