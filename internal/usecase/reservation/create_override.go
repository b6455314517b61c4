package reservation

import (
	"context"
	"time"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timeutil"
	"github.com/seatwise/table-reserve/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type OverrideInput struct {
	BranchID uint
	UserID   uint

	Date         string // YYYY-MM-DD
	OverrideType string // closed | modified

	StartTime *string // HH:mm
	EndTime   *string // HH:mm

	NewMaxSeats  *int
	NewMaxTables *int

	Note string
}

func (in OverrideInput) toModel(loc *time.Location) (*models.BookingOverride, error) {
	if _, err := time.ParseInLocation(dateLayout, in.Date, loc); err != nil {
		return nil, apperr.New(apperr.CodeInvalidDate)
	}

	if in.OverrideType != models.OverrideClosed && in.OverrideType != models.OverrideModified {
		return nil, apperr.New(apperr.CodeInvalidState)
	}

	override := &models.BookingOverride{
		BranchID:     in.BranchID,
		Date:         in.Date,
		OverrideType: in.OverrideType,
		NewMaxSeats:  in.NewMaxSeats,
		NewMaxTables: in.NewMaxTables,
		Note:         in.Note,
	}

	if in.StartTime != nil {
		minute, err := timeutil.ParseClock(*in.StartTime)
		if err != nil {
			return nil, err
		}
		override.StartTime = &minute
	}

	if in.EndTime != nil {
		minute, err := timeutil.ParseClock(*in.EndTime)
		if err != nil {
			return nil, err
		}
		override.EndTime = &minute
	}

	if in.NewMaxSeats != nil && *in.NewMaxSeats < 0 {
		return nil, apperr.New(apperr.CodeInvalidState)
	}
	if in.NewMaxTables != nil && *in.NewMaxTables < 0 {
		return nil, apperr.New(apperr.CodeInvalidState)
	}

	return override, nil
}

// ======================================================
// USE CASE
// ======================================================

type CreateOverride struct {
	repo  domain.Repository
	clk   clock.Clock
	audit *audit.Dispatcher
	inval AvailabilityInvalidator
}

func NewCreateOverride(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	inval AvailabilityInvalidator,
) *CreateOverride {
	return &CreateOverride{
		repo:  repo,
		clk:   clk,
		audit: auditDispatcher,
		inval: inval,
	}
}

func (uc *CreateOverride) Execute(
	ctx context.Context,
	in OverrideInput,
) (*models.BookingOverride, error) {

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	override, err := in.toModel(timezone.Location(branch.Timezone))
	if err != nil {
		return nil, err
	}

	// One override per (branch, date); duplicates surface override_conflict.
	if err := uc.repo.CreateOverride(ctx, override); err != nil {
		return nil, err
	}

	if err := regenerateDate(ctx, uc.repo, settings, in.BranchID, in.Date); err != nil {
		return nil, err
	}
	uc.inval.InvalidateAvailability(ctx, in.BranchID, in.Date)

	uc.audit.Dispatch(audit.Event{
		BranchID: in.BranchID,
		UserID:   &in.UserID,
		Action:   "override_created",
		Entity:   "booking_override",
		EntityID: &override.ID,
		Metadata: map[string]any{"date": in.Date, "type": in.OverrideType},
	})

	return override, nil
}
