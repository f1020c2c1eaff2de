package model

import "time"

// Client: browses, carts and orders. Identified primarily by phone.
type Customer struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Phone string `gorm:"type:varchar(30);uniqueIndex;not null" json:"phone"`

	//email is optional
	Email   string `gorm:"type:varchar(255);index" json:"email"`
	Address string `gorm:"type:varchar(255)" json:"address"`

	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
