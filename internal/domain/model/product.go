package model

import "time"

// Price is stored in minor currency units (2-decimal presentation).
// Stock never goes below zero; decrements happen through a conditional
// update, not a clamp.
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID      int64  `gorm:"not null;index" json:"shop_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Stock       int64  `gorm:"not null" json:"stock"`
	Category    string `gorm:"type:varchar(100);index" json:"category"`
	Image       string `gorm:"type:varchar(255)" json:"image"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
