package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seatwise/table-reserve/internal/models"
)

func baseSettings() *models.BookingSettings {
	return &models.BookingSettings{
		OpenTime:         540,  // 09:00
		CloseTime:        1380, // 23:00
		IntervalMinutes:  90,
		MaxSeatsPerSlot:  40,
		MaxTablesPerSlot: 10,
	}
}

func intPtr(v int) *int { return &v }

func TestResolve(t *testing.T) {
	t.Run("no override inherits settings", func(t *testing.T) {
		w := Resolve(baseSettings(), nil)

		assert.Equal(t, 540, w.OpenTime)
		assert.Equal(t, 1380, w.CloseTime)
		assert.Equal(t, 40, w.MaxSeats)
		assert.Equal(t, 10, w.MaxTables)
		assert.False(t, w.Closed)
	})

	t.Run("closed override", func(t *testing.T) {
		w := Resolve(baseSettings(), &models.BookingOverride{
			OverrideType: models.OverrideClosed,
			Note:         "private event",
		})

		assert.True(t, w.Closed)
		assert.Equal(t, "private event", w.Reason)
	})

	t.Run("closed override without note", func(t *testing.T) {
		w := Resolve(baseSettings(), &models.BookingOverride{
			OverrideType: models.OverrideClosed,
		})

		assert.True(t, w.Closed)
		assert.Equal(t, "closed", w.Reason)
	})

	t.Run("modified narrows window", func(t *testing.T) {
		w := Resolve(baseSettings(), &models.BookingOverride{
			OverrideType: models.OverrideModified,
			StartTime:    intPtr(720),  // 12:00
			EndTime:      intPtr(1260), // 21:00
		})

		assert.False(t, w.Closed)
		assert.Equal(t, 720, w.OpenTime)
		assert.Equal(t, 1260, w.CloseTime)
		// capacity untouched
		assert.Equal(t, 40, w.MaxSeats)
		assert.Equal(t, 10, w.MaxTables)
	})

	t.Run("nil capacity inherits, explicit zero does not", func(t *testing.T) {
		inherited := Resolve(baseSettings(), &models.BookingOverride{
			OverrideType: models.OverrideModified,
		})
		assert.Equal(t, 40, inherited.MaxSeats)
		assert.Equal(t, 10, inherited.MaxTables)

		zeroed := Resolve(baseSettings(), &models.BookingOverride{
			OverrideType: models.OverrideModified,
			NewMaxSeats:  intPtr(0),
			NewMaxTables: intPtr(0),
		})
		assert.Equal(t, 0, zeroed.MaxSeats)
		assert.Equal(t, 0, zeroed.MaxTables)
	})

	t.Run("modified capacity only", func(t *testing.T) {
		w := Resolve(baseSettings(), &models.BookingOverride{
			OverrideType: models.OverrideModified,
			NewMaxSeats:  intPtr(20),
		})

		assert.Equal(t, 20, w.MaxSeats)
		assert.Equal(t, 10, w.MaxTables)
		assert.Equal(t, 540, w.OpenTime)
		assert.Equal(t, 1380, w.CloseTime)
	})
}

func TestFits(t *testing.T) {
	usage := SlotUsage{SeatsUsed: 36, TablesUsed: 9}

	assert.True(t, Fits(usage, 40, 10, 4))
	assert.False(t, Fits(usage, 40, 10, 5))

	// no table left blocks even a tiny party
	assert.False(t, Fits(SlotUsage{SeatsUsed: 0, TablesUsed: 10}, 40, 10, 1))

	// empty slot
	assert.True(t, Fits(SlotUsage{}, 40, 10, 40))
	assert.False(t, Fits(SlotUsage{}, 40, 10, 41))
}

func TestNewSlotAvailability(t *testing.T) {
	s := NewSlotAvailability(1110, 40, 10, 38, 9, 2)

	assert.Equal(t, 1110, s.Time)
	assert.Equal(t, "18:30", s.Clock)
	assert.Equal(t, "6:30 PM", s.Display)
	assert.Equal(t, 2, s.RemainingSeats)
	assert.Equal(t, 1, s.RemainingTables)
	assert.True(t, s.IsAvailable)

	// same usage, bigger party
	assert.False(t, NewSlotAvailability(1110, 40, 10, 38, 9, 3).IsAvailable)
}
