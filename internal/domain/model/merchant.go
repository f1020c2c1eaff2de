package model

import "time"

// Commerçant: owns one or more shops.
type Merchant struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Address string `gorm:"type:varchar(255)" json:"address"`

	//profile picture path
	Image string `gorm:"type:varchar(255)" json:"image"`

	//geolocation for the storefront map
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
