package models

import "time"

const (
	OverrideClosed   = "closed"
	OverrideModified = "modified"
)

// BookingOverride is a date-specific exception to a branch's settings. At most
// one override may exist per (branch, date). Nil capacity fields inherit from
// settings; an explicit zero means "no capacity" for that date.
type BookingOverride struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `gorm:"uniqueIndex:idx_override_branch_date" json:"branch_id"`
	Date     string `gorm:"size:10;uniqueIndex:idx_override_branch_date" json:"date"`

	OverrideType string `gorm:"size:20;not null" json:"override_type"`

	StartTime *int `json:"start_time"`
	EndTime   *int `json:"end_time"`

	NewMaxSeats  *int `json:"new_max_seats"`
	NewMaxTables *int `json:"new_max_tables"`

	Note string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
