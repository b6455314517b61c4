package reservation

import (
	"context"

	"github.com/seatwise/table-reserve/internal/models"
)

type Repository interface {
	// -------- Branch --------
	GetBranchByID(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	GetBranchBySlug(
		ctx context.Context,
		slug string,
	) (*models.Branch, error)

	// -------- Settings --------
	GetSettings(
		ctx context.Context,
		branchID uint,
	) (*models.BookingSettings, error)

	SaveSettings(
		ctx context.Context,
		settings *models.BookingSettings,
	) error

	// -------- Overrides --------
	GetOverride(
		ctx context.Context,
		branchID uint,
		date string,
	) (*models.BookingOverride, error)

	ListOverrides(
		ctx context.Context,
		branchID uint,
	) ([]models.BookingOverride, error)

	CreateOverride(
		ctx context.Context,
		override *models.BookingOverride,
	) error

	UpdateOverride(
		ctx context.Context,
		override *models.BookingOverride,
	) error

	DeleteOverride(
		ctx context.Context,
		branchID uint,
		date string,
	) error

	// -------- Materialized slots --------
	RegenerateSlots(
		ctx context.Context,
		branchID uint,
		date string,
		window Window,
		intervalMinutes int,
	) error

	ListSlots(
		ctx context.Context,
		branchID uint,
		date string,
	) ([]models.TimeSlot, error)

	// -------- Capacity ledger --------
	SlotUsage(
		ctx context.Context,
		branchID uint,
		date string,
		minute int,
	) (SlotUsage, error)

	UsageForDay(
		ctx context.Context,
		branchID uint,
		date string,
	) (map[int]SlotUsage, error)

	// -------- Booking (create / state change) --------

	// CreateBooking re-checks remaining capacity for the exact slot key and
	// inserts atomically; concurrent attempts never oversell. Transient
	// storage conflicts surface as booking_contention for the caller to
	// retry fresh.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		maxSeats int,
		maxTables int,
	) error

	GetBookingByReference(
		ctx context.Context,
		reference string,
	) (*models.Booking, error)

	GetBookingForBranch(
		ctx context.Context,
		bookingID uint,
		branchID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForDay(
		ctx context.Context,
		branchID uint,
		date string,
	) ([]models.Booking, error)

	// -------- Diner --------
	GetOrCreateDiner(
		ctx context.Context,
		branchID uint,
		name string,
		phone string,
		email string,
	) (*models.Diner, error)
}
