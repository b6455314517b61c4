package reservation

import (
	"context"

	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timezone"
)

// regenerateDate rebuilds the materialized slots for a single (branch, date)
// from current settings and that date's override. Safe to call repeatedly:
// unchanged inputs produce an identical slot set.
func regenerateDate(
	ctx context.Context,
	repo domain.Repository,
	settings *models.BookingSettings,
	branchID uint,
	date string,
) error {

	override, err := repo.GetOverride(ctx, branchID, date)
	if err != nil {
		return err
	}

	window := domain.Resolve(settings, override)
	return repo.RegenerateSlots(ctx, branchID, date, window, settings.IntervalMinutes)
}

// regenerateHorizon rebuilds slots for every date from today through
// today+days-1 in the branch's timezone.
func regenerateHorizon(
	ctx context.Context,
	repo domain.Repository,
	clk clock.Clock,
	settings *models.BookingSettings,
	branch *models.Branch,
	days int,
	inval AvailabilityInvalidator,
) error {

	loc := timezone.Location(branch.Timezone)
	start := clk.Now(loc)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		if err := regenerateDate(ctx, repo, settings, branch.ID, date); err != nil {
			return err
		}
		inval.InvalidateAvailability(ctx, branch.ID, date)
	}

	return nil
}
