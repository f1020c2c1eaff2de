package model

import "time"

type PaymentStatus string

// PENDING -> AWAITING_CONFIRMATION -> PAID | FAILED, forward only.
// A FAILED payment leaves the order PENDING so the customer can retry
// with another method.
const (
	PaymentStatusPending      PaymentStatus = "PENDING"
	PaymentStatusAwaitingConf PaymentStatus = "AWAITING_CONFIRMATION"
	PaymentStatusPaid         PaymentStatus = "PAID"
	PaymentStatusFailed       PaymentStatus = "FAILED"
)

type Payment struct {
	ID      int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64         `gorm:"not null;index" json:"order_id"`
	Method  PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Amount  int64         `gorm:"not null" json:"amount"`
	Status  PaymentStatus `gorm:"type:varchar(30);not null;index" json:"status"`

	//reference handed out by the gateway, key for webhook confirmation.
	//NULL until the gateway accepts the charge; failed attempts keep
	//NULL, which a unique index tolerates any number of times
	ProviderRef *string `gorm:"type:varchar(255);uniqueIndex" json:"provider_ref,omitempty"`

	//mobile money wallet number, masked card, ...
	Detail string `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
