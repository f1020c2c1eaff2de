package model

import "time"

type OrderStatus string

// Statuses only move forward: PENDING -> PAID -> DELIVERED.
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

type PaymentMethod string

const (
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodCard        PaymentMethod = "card"
)

// Commande. Total is the sum of line subtotals at creation time and is
// never recomputed afterwards.
type Order struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID     int64         `gorm:"not null;index" json:"customer_id"`
	ShopID         int64         `gorm:"not null;index" json:"shop_id"`
	Status         OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Total          int64         `gorm:"not null" json:"total"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	IdempotencyKey string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
