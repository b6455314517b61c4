package reservation

import (
	"context"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timezone"
)

type UpdateOverride struct {
	repo  domain.Repository
	clk   clock.Clock
	audit *audit.Dispatcher
	inval AvailabilityInvalidator
}

func NewUpdateOverride(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	inval AvailabilityInvalidator,
) *UpdateOverride {
	return &UpdateOverride{
		repo:  repo,
		clk:   clk,
		audit: auditDispatcher,
		inval: inval,
	}
}

func (uc *UpdateOverride) Execute(
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

	existing, err := uc.repo.GetOverride(ctx, in.BranchID, in.Date)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.New(apperr.CodeOverrideNotFound)
	}

	override, err := in.toModel(timezone.Location(branch.Timezone))
	if err != nil {
		return nil, err
	}

	override.ID = existing.ID
	override.CreatedAt = existing.CreatedAt

	if err := uc.repo.UpdateOverride(ctx, override); err != nil {
		return nil, err
	}

	if err := regenerateDate(ctx, uc.repo, settings, in.BranchID, in.Date); err != nil {
		return nil, err
	}
	uc.inval.InvalidateAvailability(ctx, in.BranchID, in.Date)

	uc.audit.Dispatch(audit.Event{
		BranchID: in.BranchID,
		UserID:   &in.UserID,
		Action:   "override_updated",
		Entity:   "booking_override",
		EntityID: &override.ID,
		Metadata: map[string]any{"date": in.Date, "type": in.OverrideType},
	})

	return override, nil
}
