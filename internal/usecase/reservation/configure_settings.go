package reservation

import (
	"context"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/clock"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type ConfigureSettingsInput struct {
	BranchID uint
	UserID   uint

	OpenTime         string // HH:mm
	CloseTime        string // HH:mm
	IntervalMinutes  int
	MaxSeatsPerSlot  int
	MaxTablesPerSlot int
}

// ======================================================
// USE CASE
// ======================================================

type ConfigureSettings struct {
	repo        domain.Repository
	clk         clock.Clock
	audit       *audit.Dispatcher
	inval       AvailabilityInvalidator
	horizonDays int
}

func NewConfigureSettings(
	repo domain.Repository,
	clk clock.Clock,
	auditDispatcher *audit.Dispatcher,
	inval AvailabilityInvalidator,
	horizonDays int,
) *ConfigureSettings {
	return &ConfigureSettings{
		repo:        repo,
		clk:         clk,
		audit:       auditDispatcher,
		inval:       inval,
		horizonDays: horizonDays,
	}
}

// Execute replaces the branch's settings record and synchronously rebuilds
// the materialized slots across the forward horizon, so no slot row is ever
// left inconsistent with current settings.
func (uc *ConfigureSettings) Execute(
	ctx context.Context,
	in ConfigureSettingsInput,
) (*models.BookingSettings, error) {

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}

	open, err := timeutil.ParseClock(in.OpenTime)
	if err != nil {
		return nil, err
	}

	closeAt, err := timeutil.ParseClock(in.CloseTime)
	if err != nil {
		return nil, err
	}

	if open >= closeAt || in.IntervalMinutes <= 0 ||
		in.MaxSeatsPerSlot <= 0 || in.MaxTablesPerSlot <= 0 {
		return nil, apperr.New(apperr.CodeInvalidState)
	}

	settings := &models.BookingSettings{
		BranchID:         in.BranchID,
		OpenTime:         open,
		CloseTime:        closeAt,
		IntervalMinutes:  in.IntervalMinutes,
		MaxSeatsPerSlot:  in.MaxSeatsPerSlot,
		MaxTablesPerSlot: in.MaxTablesPerSlot,
	}

	if err := uc.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}

	if err := regenerateHorizon(
		ctx, uc.repo, uc.clk, settings, branch, uc.horizonDays, uc.inval,
	); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: in.BranchID,
		UserID:   &in.UserID,
		Action:   "settings_updated",
		Entity:   "booking_settings",
		EntityID: &settings.ID,
		Metadata: map[string]any{
			"open":     in.OpenTime,
			"close":    in.CloseTime,
			"interval": in.IntervalMinutes,
		},
	})

	return settings, nil
}
