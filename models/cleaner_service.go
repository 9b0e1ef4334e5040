package models

import "time"

type CleanerService struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	ServiceName string `gorm:"type:varchar(100); not null" json:"service_name"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
