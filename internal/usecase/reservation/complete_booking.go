package reservation

import (
	"context"

	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	clk   clock.Clock
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		clk:   clk,
		audit: auditDispatcher,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	branchID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	branch, err := uc.repo.GetBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForBranch(ctx, bookingID, branchID)
	if err != nil {
		return nil, err
	}

	now := uc.clk.Now(timezone.Location(branch.Timezone))
	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &userID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
