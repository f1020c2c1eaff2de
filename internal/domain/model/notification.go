package model

import "time"

type NotificationType string

const (
	NotificationTypeOrder NotificationType = "commande"
	NotificationTypeAlert NotificationType = "alerte"
)

// Kept row per outgoing message; actual delivery is best effort.
type Notification struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID int64            `gorm:"not null;index" json:"recipient_id"`
	Type        NotificationType `gorm:"type:varchar(30);not null;index" json:"type"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
}
