package models

import "time"

// BookingSettings is the single active scheduling configuration of a branch.
// Times are minutes since midnight; OpenTime < CloseTime after normalization.
// Updates replace the record, they never version it.
type BookingSettings struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `gorm:"uniqueIndex" json:"branch_id"`

	OpenTime         int `json:"open_time"`
	CloseTime        int `json:"close_time"`
	IntervalMinutes  int `json:"interval_minutes"`
	MaxSeatsPerSlot  int `json:"max_seats_per_slot"`
	MaxTablesPerSlot int `json:"max_tables_per_slot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
