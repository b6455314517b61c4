package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timeutil"
	"github.com/seatwise/table-reserve/internal/timezone"
)

// createAttempts bounds the retry loop around transient storage conflicts;
// every attempt re-runs the capacity check against fresh counts.
const createAttempts = 3

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BranchID uint

	DinerName  string
	DinerPhone string
	DinerEmail string

	Date      string // YYYY-MM-DD
	Time      string // HH:mm
	PartySize int
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	clk   clock.Clock
	audit *audit.Dispatcher
	inval AvailabilityInvalidator
}

func NewCreateBooking(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	inval AvailabilityInvalidator,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		clk:   clk,
		audit: auditDispatcher,
		inval: inval,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(branch.Timezone)

	if _, err := time.ParseInLocation(dateLayout, in.Date, loc); err != nil {
		return nil, apperr.New(apperr.CodeInvalidDate)
	}

	minute, err := timeutil.ParseClock(in.Time)
	if err != nil {
		return nil, err
	}

	override, err := uc.repo.GetOverride(ctx, in.BranchID, in.Date)
	if err != nil {
		return nil, err
	}

	window := domain.Resolve(settings, override)
	if window.Closed {
		return nil, apperr.New(apperr.CodeBranchClosed)
	}

	// The requested time must land on the canonical slot grid and leave a
	// full interval before closing.
	if minute < window.OpenTime ||
		minute+settings.IntervalMinutes > window.CloseTime ||
		(minute-window.OpenTime)%settings.IntervalMinutes != 0 {
		return nil, apperr.New(apperr.CodeOutsideOpeningHours)
	}

	now := uc.clk.Now(loc)
	today := now.Format(dateLayout)
	nowMinute := now.Hour()*60 + now.Minute()

	if in.Date < today || (in.Date == today && minute < nowMinute) {
		return nil, apperr.New(apperr.CodeSlotInPast)
	}

	diner, err := uc.repo.GetOrCreateDiner(
		ctx,
		in.BranchID,
		in.DinerName,
		in.DinerPhone,
		in.DinerEmail,
	)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Reference: uuid.NewString(),
		BranchID:  in.BranchID,
		DinerID:   diner.ID,
		Date:      in.Date,
		Time:      minute,
		PartySize: in.PartySize,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	// The repository re-checks capacity under a slot lock; only transient
	// store conflicts are retried, and each retry re-reads fresh counts.
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = uc.repo.CreateBooking(ctx, booking, window.MaxSeats, window.MaxTables)
		if !apperr.Is(err, apperr.CodeBookingContention) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	uc.inval.InvalidateAvailability(ctx, in.BranchID, in.Date)

	uc.audit.Dispatch(audit.Event{
		BranchID: in.BranchID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &booking.ID,
		Metadata: map[string]any{
			"date":       booking.Date,
			"time":       timeutil.FormatClock(booking.Time),
			"party_size": booking.PartySize,
		},
	})

	return booking, nil
}
