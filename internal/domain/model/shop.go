package model

import "time"

// Boutique: a merchant-owned catalog namespace.
// Deleting a shop cascades to its products and orders.
type Shop struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID  int64  `gorm:"not null;index" json:"merchant_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"type:varchar(255)" json:"image"`

	//path of the generated QR code PNG pointing at the public shop page
	QRCodePath string `gorm:"type:varchar(255)" json:"qr_code_path"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
