package reservation

import (
	"context"

	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	clk   clock.Clock
	audit *audit.Dispatcher
	inval AvailabilityInvalidator
}

func NewCancelBooking(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	inval AvailabilityInvalidator,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		clk:   clk,
		audit: auditDispatcher,
		inval: inval,
	}
}

// Execute cancels on behalf of the branch owner.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	branchID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForBranch(ctx, bookingID, branchID)
	if err != nil {
		return nil, err
	}

	return uc.cancel(ctx, b, &userID)
}

// ExecuteByReference cancels on behalf of the diner holding the booking
// reference.
func (uc *CancelBooking) ExecuteByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	return uc.cancel(ctx, b, nil)
}

// Cancellation frees the slot's capacity in the same commit; the next
// availability read reflects it.
func (uc *CancelBooking) cancel(
	ctx context.Context,
	b *models.Booking,
	userID *uint,
) (*models.Booking, error) {

	branch, err := uc.repo.GetBranchByID(ctx, b.BranchID)
	if err != nil {
		return nil, err
	}

	now := uc.clk.Now(timezone.Location(branch.Timezone))
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.inval.InvalidateAvailability(ctx, b.BranchID, b.Date)

	uc.audit.Dispatch(audit.Event{
		BranchID: b.BranchID,
		UserID:   userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
