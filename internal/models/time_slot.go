package models

import "time"

// TimeSlot is a materialized bookable start time. Slots are derived from
// settings and overrides, regenerated whenever either changes, and give the
// booking transaction a row to lock.
type TimeSlot struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `gorm:"uniqueIndex:idx_slot_branch_date_time" json:"branch_id"`
	Date     string `gorm:"size:10;uniqueIndex:idx_slot_branch_date_time" json:"date"`
	Time     int    `gorm:"uniqueIndex:idx_slot_branch_date_time" json:"time"`

	MaxSeats  int `json:"max_seats"`
	MaxTables int `json:"max_tables"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
