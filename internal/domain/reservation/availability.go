package reservation

import "github.com/seatwise/table-reserve/internal/timeutil"

type AvailabilityInput struct {
	BranchID      uint
	Date          string // YYYY-MM-DD
	PartySize     int
	RequestedTime *int // minutes since midnight, engages the ranker
	Limit         int  // max slots when ranking; 0 = all
}

// SlotAvailability is one bookable instant with its remaining capacity.
type SlotAvailability struct {
	Time            int    `json:"-"`
	Clock           string `json:"time"`
	Display         string `json:"display_time"`
	RemainingSeats  int    `json:"remaining_seats"`
	RemainingTables int    `json:"remaining_tables"`
	IsAvailable     bool   `json:"is_available"`
}

// AvailabilityResult distinguishes "closed today" from an ordinary list. A
// result with zero slots is a normal outcome, never an error.
type AvailabilityResult struct {
	Date   string             `json:"date"`
	Closed bool               `json:"closed"`
	Reason string             `json:"reason,omitempty"`
	Slots  []SlotAvailability `json:"slots"`
}

// SlotUsage is the capacity consumed by active bookings at one exact
// (branch, date, time) key.
type SlotUsage struct {
	SeatsUsed  int
	TablesUsed int
}

// Fits reports whether a party still fits given the slot's limits: enough
// seats for the whole party and at least one free table unit.
func Fits(usage SlotUsage, maxSeats, maxTables, partySize int) bool {
	return maxSeats-usage.SeatsUsed >= partySize && maxTables-usage.TablesUsed >= 1
}

// NewSlotAvailability assembles the per-slot view handed to callers.
func NewSlotAvailability(minute, maxSeats, maxTables, seatsUsed, tablesUsed, partySize int) SlotAvailability {
	remainingSeats := maxSeats - seatsUsed
	remainingTables := maxTables - tablesUsed

	return SlotAvailability{
		Time:            minute,
		Clock:           timeutil.FormatClock(minute),
		Display:         timeutil.FormatDisplay(minute),
		RemainingSeats:  remainingSeats,
		RemainingTables: remainingTables,
		IsAvailable:     remainingSeats >= partySize && remainingTables >= 1,
	}
}
