package models

import "time"

// Status request: Pending (baru dibuat) -> Assigned (cleaner dipilih) ->
// string bebas dari client/cleaner (mis. "In Progress", "Completed").
const (
	RequestStatusPending  = "Pending"
	RequestStatusAssigned = "Assigned"
)

type CleanerRequest struct {
	ID        uint   `gorm:"primaryKey"`
	ClientID  uint   `gorm:"not null;index" json:"client_id"`
	Location  string `gorm:"type:varchar(100); not null"`
	Service   string `gorm:"type:varchar(50); not null"`
	Status    string `gorm:"type:varchar(20); not null;default:'Pending'"`
	CleanerID *uint  `gorm:"index" json:"cleaner_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
