package models

import "time"

type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:100;not null;unique" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Active   bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
