package models

import "time"

type User struct {
	ID          uint    `gorm:"primaryKey"`
	Username    string  `gorm:"type:varchar(150); unique;not null"`
	Email       string  `gorm:"type:varchar(150); unique;not null"`
	Password    string  `gorm:"type:varchar(255); not null" json:"-"`
	PhoneNumber *string `gorm:"type:varchar(20)" json:"phone_number"`
	Location    *string `gorm:"type:varchar(200)"`
	Role        string  `gorm:"type:varchar(20); not null"` // client, cleaner
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLogin   *time.Time `json:"last_login"`
}
