package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	BranchID uint   `gorm:"index:idx_booking_slot" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	DinerID uint  `json:"diner_id"`
	Diner   Diner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"diner"`

	Date string `gorm:"size:10;index:idx_booking_slot" json:"date"`
	Time int    `gorm:"index:idx_booking_slot" json:"time"`

	PartySize int `json:"party_size"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
