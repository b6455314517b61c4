package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/models"
)

func strRef(s string) *string { return &s }

func TestCreateOverride(t *testing.T) {
	repo := dinnerRepo()
	inval := &fakeInvalidator{}
	uc := NewCreateOverride(repo, at("2026-08-24", 10, 0), testDispatcher(), inval)

	t.Run("closed day", func(t *testing.T) {
		override, err := uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			UserID:       testUserID,
			Date:         "2026-08-30",
			OverrideType: models.OverrideClosed,
			Note:         "renovation",
		})
		require.NoError(t, err)

		assert.NotZero(t, override.ID)
		assert.Equal(t, models.OverrideClosed, override.OverrideType)

		// slots rebuilt for that date, cache dropped
		assert.Contains(t, repo.regenerated, "1:2026-08-30")
		assert.Contains(t, inval.calls, "1:2026-08-30")
	})

	t.Run("duplicate date conflicts", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			UserID:       testUserID,
			Date:         "2026-08-30",
			OverrideType: models.OverrideModified,
		})
		assert.True(t, apperr.Is(err, apperr.CodeOverrideConflict))
	})

	t.Run("modified with window", func(t *testing.T) {
		override, err := uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			UserID:       testUserID,
			Date:         "2026-08-31",
			OverrideType: models.OverrideModified,
			StartTime:    strRef("12:00"),
			EndTime:      strRef("20:00"),
			NewMaxSeats:  intRef(16),
		})
		require.NoError(t, err)

		require.NotNil(t, override.StartTime)
		assert.Equal(t, 720, *override.StartTime)
		require.NotNil(t, override.EndTime)
		assert.Equal(t, 1200, *override.EndTime)
		require.NotNil(t, override.NewMaxSeats)
		assert.Equal(t, 16, *override.NewMaxSeats)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			Date:         "soon",
			OverrideType: models.OverrideClosed,
		})
		assert.True(t, apperr.Is(err, apperr.CodeInvalidDate))

		_, err = uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			Date:         "2026-09-01",
			OverrideType: "holiday",
		})
		assert.True(t, apperr.Is(err, apperr.CodeInvalidState))

		_, err = uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			Date:         "2026-09-01",
			OverrideType: models.OverrideModified,
			StartTime:    strRef("noon"),
		})
		assert.True(t, apperr.Is(err, apperr.CodeInvalidTimeFormat))

		_, err = uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			Date:         "2026-09-01",
			OverrideType: models.OverrideModified,
			NewMaxSeats:  intRef(-1),
		})
		assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
	})
}

func TestUpdateOverride(t *testing.T) {
	repo := dinnerRepo()
	createUc := NewCreateOverride(repo, at("2026-08-24", 10, 0), testDispatcher(), &fakeInvalidator{})

	created, err := createUc.Execute(context.Background(), OverrideInput{
		BranchID:     testBranchID,
		UserID:       testUserID,
		Date:         "2026-08-30",
		OverrideType: models.OverrideClosed,
	})
	require.NoError(t, err)

	uc := NewUpdateOverride(repo, at("2026-08-24", 10, 0), testDispatcher(), &fakeInvalidator{})

	t.Run("reopens with a narrower window", func(t *testing.T) {
		updated, err := uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			UserID:       testUserID,
			Date:         "2026-08-30",
			OverrideType: models.OverrideModified,
			StartTime:    strRef("18:00"),
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, models.OverrideModified, updated.OverrideType)
	})

	t.Run("missing override", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			Date:         "2026-09-15",
			OverrideType: models.OverrideClosed,
		})
		assert.True(t, apperr.Is(err, apperr.CodeOverrideNotFound))
	})
}

func TestDeleteOverride(t *testing.T) {
	repo := dinnerRepo()
	createUc := NewCreateOverride(repo, at("2026-08-24", 10, 0), testDispatcher(), &fakeInvalidator{})

	_, err := createUc.Execute(context.Background(), OverrideInput{
		BranchID:     testBranchID,
		UserID:       testUserID,
		Date:         "2026-08-30",
		OverrideType: models.OverrideClosed,
	})
	require.NoError(t, err)

	inval := &fakeInvalidator{}
	uc := NewDeleteOverride(repo, at("2026-08-24", 10, 0), testDispatcher(), inval)

	require.NoError(t, uc.Execute(context.Background(), testBranchID, testUserID, "2026-08-30"))

	override, err := repo.GetOverride(context.Background(), testBranchID, "2026-08-30")
	require.NoError(t, err)
	assert.Nil(t, override)

	// the date is regenerated back to the base schedule
	assert.Contains(t, inval.calls, "1:2026-08-30")
}

func TestSlotRegenerationIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.addBranch(testBranchID, "UTC")

	uc := NewConfigureSettings(repo, at("2026-08-24", 10, 0), testDispatcher(), &fakeInvalidator{}, 7)

	in := ConfigureSettingsInput{
		BranchID:         testBranchID,
		UserID:           testUserID,
		OpenTime:         "09:00",
		CloseTime:        "23:00",
		IntervalMinutes:  90,
		MaxSeatsPerSlot:  40,
		MaxTablesPerSlot: 10,
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	first, err := repo.ListSlots(context.Background(), testBranchID, "2026-08-26")
	require.NoError(t, err)
	require.Len(t, first, 9)

	t.Run("reapplied settings rebuild the same grid", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)

		second, err := repo.ListSlots(context.Background(), testBranchID, "2026-08-26")
		require.NoError(t, err)

		assert.Equal(t, first, second)

		seen := map[int]bool{}
		for _, slot := range second {
			assert.False(t, seen[slot.Time], "duplicate slot at %d", slot.Time)
			seen[slot.Time] = true
		}
	})

	t.Run("override round trip restores the base grid", func(t *testing.T) {
		createUc := NewCreateOverride(repo, at("2026-08-24", 10, 0), testDispatcher(), &fakeInvalidator{})
		_, err := createUc.Execute(context.Background(), OverrideInput{
			BranchID:     testBranchID,
			UserID:       testUserID,
			Date:         "2026-08-26",
			OverrideType: models.OverrideClosed,
		})
		require.NoError(t, err)

		closed, err := repo.ListSlots(context.Background(), testBranchID, "2026-08-26")
		require.NoError(t, err)
		assert.Empty(t, closed)

		deleteUc := NewDeleteOverride(repo, at("2026-08-24", 10, 0), testDispatcher(), &fakeInvalidator{})
		require.NoError(t, deleteUc.Execute(context.Background(), testBranchID, testUserID, "2026-08-26"))

		restored, err := repo.ListSlots(context.Background(), testBranchID, "2026-08-26")
		require.NoError(t, err)
		assert.Equal(t, first, restored)
	})
}

func TestConfigureSettings(t *testing.T) {
	repo := newFakeRepo()
	repo.addBranch(testBranchID, "UTC")

	inval := &fakeInvalidator{}
	uc := NewConfigureSettings(repo, at("2026-08-24", 10, 0), testDispatcher(), inval, 7)

	t.Run("creates and regenerates horizon", func(t *testing.T) {
		settings, err := uc.Execute(context.Background(), ConfigureSettingsInput{
			BranchID:         testBranchID,
			UserID:           testUserID,
			OpenTime:         "09:00",
			CloseTime:        "23:00",
			IntervalMinutes:  90,
			MaxSeatsPerSlot:  40,
			MaxTablesPerSlot: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, 540, settings.OpenTime)
		assert.Equal(t, 1380, settings.CloseTime)

		// one regeneration per day of the horizon, starting today
		assert.Len(t, repo.regenerated, 7)
		assert.Equal(t, "1:2026-08-24", repo.regenerated[0])
		assert.Equal(t, "1:2026-08-30", repo.regenerated[6])
		assert.Len(t, inval.calls, 7)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ConfigureSettingsInput{
			BranchID:         testBranchID,
			OpenTime:         "23:00",
			CloseTime:        "09:00",
			IntervalMinutes:  90,
			MaxSeatsPerSlot:  40,
			MaxTablesPerSlot: 10,
		})
		assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
	})

	t.Run("rejects non positive capacity", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ConfigureSettingsInput{
			BranchID:         testBranchID,
			OpenTime:         "09:00",
			CloseTime:        "23:00",
			IntervalMinutes:  90,
			MaxSeatsPerSlot:  0,
			MaxTablesPerSlot: 10,
		})
		assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
	})

	t.Run("rejects malformed clock", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ConfigureSettingsInput{
			BranchID:         testBranchID,
			OpenTime:         "9am",
			CloseTime:        "23:00",
			IntervalMinutes:  90,
			MaxSeatsPerSlot:  40,
			MaxTablesPerSlot: 10,
		})
		assert.True(t, apperr.Is(err, apperr.CodeInvalidTimeFormat))
	})
}
