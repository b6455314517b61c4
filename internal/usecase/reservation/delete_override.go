package reservation

import (
	"context"

	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
)

type DeleteOverride struct {
	repo  domain.Repository
	clk   clock.Clock
	audit *audit.Dispatcher
	inval AvailabilityInvalidator
}

func NewDeleteOverride(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	inval AvailabilityInvalidator,
) *DeleteOverride {
	return &DeleteOverride{
		repo:  repo,
		clk:   clk,
		audit: auditDispatcher,
		inval: inval,
	}
}

func (uc *DeleteOverride) Execute(
	ctx context.Context,
	branchID uint,
	userID uint,
	date string,
) error {

	settings, err := uc.repo.GetSettings(ctx, branchID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteOverride(ctx, branchID, date); err != nil {
		return err
	}

	// Back to the base schedule for that date.
	if err := regenerateDate(ctx, uc.repo, settings, branchID, date); err != nil {
		return err
	}
	uc.inval.InvalidateAvailability(ctx, branchID, date)

	uc.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &userID,
		Action:   "override_deleted",
		Entity:   "booking_override",
		Metadata: map[string]any{"date": date},
	})

	return nil
}
