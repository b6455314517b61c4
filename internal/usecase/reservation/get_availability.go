package reservation

import (
	"context"
	"time"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/timeutil"
	"github.com/seatwise/table-reserve/internal/timezone"
)

const (
	dateLayout = "2006-01-02"

	// Wall-clock band in which a "today" query is served as tomorrow:
	// past 22:00 (or before 06:00) truncating today's slots would leave
	// nothing useful, so the request rolls over to the next day's normal
	// opening.
	lateNightStart = 22 * 60
	lateNightEnd   = 6 * 60

	// DefaultRankCount is how many nearby slots the ranker keeps when the
	// caller asks for times around a requested hour without a limit.
	DefaultRankCount = 5
)

type GetAvailability struct {
	repo domain.Repository
	clk  clock.Clock
}

func NewGetAvailability(repo domain.Repository, clk clock.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clk: clk}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(branch.Timezone)
	now := uc.clk.Now(loc)
	nowMinute := now.Hour()*60 + now.Minute()
	today := now.Format(dateLayout)

	queryDate, err := time.ParseInLocation(dateLayout, in.Date, loc)
	if err != nil {
		return nil, apperr.New(apperr.CodeInvalidDate)
	}

	effectiveDate := in.Date
	isToday := in.Date == today

	if isToday && (nowMinute >= lateNightStart || nowMinute < lateNightEnd) {
		effectiveDate = queryDate.AddDate(0, 0, 1).Format(dateLayout)
		isToday = false
	}

	override, err := uc.repo.GetOverride(ctx, in.BranchID, effectiveDate)
	if err != nil {
		return nil, err
	}

	window := domain.Resolve(settings, override)
	if window.Closed {
		return &domain.AvailabilityResult{
			Date:   effectiveDate,
			Closed: true,
			Reason: window.Reason,
			Slots:  []domain.SlotAvailability{},
		}, nil
	}

	starts := domain.GenerateSlots(window.OpenTime, window.CloseTime, settings.IntervalMinutes)

	usage, err := uc.repo.UsageForDay(ctx, in.BranchID, effectiveDate)
	if err != nil {
		return nil, err
	}

	// For today the opening bound is raised to now, rounded up to the next
	// interval boundary, keeping the canonical slot grid intact.
	bound := -1
	if isToday {
		bound = timeutil.RoundUp(nowMinute, settings.IntervalMinutes)
	}

	slots := make([]domain.SlotAvailability, 0, len(starts))
	for _, minute := range starts {
		if bound >= 0 && minute < bound {
			continue
		}
		// Safety net against boundary rounding: never offer a start
		// strictly in the past.
		if isToday && minute < nowMinute {
			continue
		}

		u := usage[minute]
		slots = append(slots, domain.NewSlotAvailability(
			minute,
			window.MaxSeats,
			window.MaxTables,
			u.SeatsUsed,
			u.TablesUsed,
			in.PartySize,
		))
	}

	if in.RequestedTime != nil {
		limit := in.Limit
		if limit <= 0 {
			limit = DefaultRankCount
		}

		open := make([]domain.SlotAvailability, 0, len(slots))
		for _, s := range slots {
			if s.IsAvailable {
				open = append(open, s)
			}
		}
		slots = domain.Rank(open, *in.RequestedTime, limit)
		if slots == nil {
			slots = []domain.SlotAvailability{}
		}
	}

	return &domain.AvailabilityResult{
		Date:  effectiveDate,
		Slots: slots,
	}, nil
}
