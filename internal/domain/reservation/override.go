package reservation

import "github.com/seatwise/table-reserve/internal/models"

// Window is the effective schedule for one branch on one date after applying
// a date override (if any) on top of the base settings.
type Window struct {
	OpenTime  int
	CloseTime int
	MaxSeats  int
	MaxTables int

	Closed bool
	Reason string
}

// Resolve applies at most one override to the base settings. A closed
// override empties the window; a modified override narrows the window and
// capacity where its fields are present. A nil capacity field inherits the
// base value, an explicit zero means no capacity that day.
//
// Duplicate overrides for one (branch, date) are rejected at the persistence
// boundary; the resolver trusts its single input.
func Resolve(settings *models.BookingSettings, override *models.BookingOverride) Window {
	w := Window{
		OpenTime:  settings.OpenTime,
		CloseTime: settings.CloseTime,
		MaxSeats:  settings.MaxSeatsPerSlot,
		MaxTables: settings.MaxTablesPerSlot,
	}

	if override == nil {
		return w
	}

	if override.OverrideType == models.OverrideClosed {
		w.Closed = true
		w.Reason = "closed"
		if override.Note != "" {
			w.Reason = override.Note
		}
		return w
	}

	if override.StartTime != nil {
		w.OpenTime = *override.StartTime
	}
	if override.EndTime != nil {
		w.CloseTime = *override.EndTime
	}
	if override.NewMaxSeats != nil {
		w.MaxSeats = *override.NewMaxSeats
	}
	if override.NewMaxTables != nil {
		w.MaxTables = *override.NewMaxTables
	}

	return w
}
