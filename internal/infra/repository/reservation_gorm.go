package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seatwise/table-reserve/internal/apperr"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Branch
// --------------------------------------------------

func (r *ReservationGormRepository) GetBranchByID(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeBranchNotFound)
		}
		return nil, err
	}
	return &branch, nil
}

func (r *ReservationGormRepository) GetBranchBySlug(
	ctx context.Context,
	slug string,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeBranchNotFound)
		}
		return nil, err
	}
	return &branch, nil
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *ReservationGormRepository) GetSettings(
	ctx context.Context,
	branchID uint,
) (*models.BookingSettings, error) {

	var settings models.BookingSettings
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeSettingsNotFound)
		}
		return nil, err
	}
	return &settings, nil
}

// SaveSettings replaces the branch's active record; one settings row per
// branch, no versioning.
func (r *ReservationGormRepository) SaveSettings(
	ctx context.Context,
	settings *models.BookingSettings,
) error {

	var existing models.BookingSettings
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", settings.BranchID).
		First(&existing).Error

	if err == nil {
		settings.ID = existing.ID
		settings.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(settings).Error
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(settings).Error
}

// --------------------------------------------------
// Overrides
// --------------------------------------------------

func (r *ReservationGormRepository) GetOverride(
	ctx context.Context,
	branchID uint,
	date string,
) (*models.BookingOverride, error) {

	var override models.BookingOverride
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date).
		First(&override).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *ReservationGormRepository) ListOverrides(
	ctx context.Context,
	branchID uint,
) ([]models.BookingOverride, error) {

	var overrides []models.BookingOverride
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("date ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *ReservationGormRepository) CreateOverride(
	ctx context.Context,
	override *models.BookingOverride,
) error {

	err := r.db.WithContext(ctx).Create(override).Error
	if isUniqueViolation(err) {
		return apperr.New(apperr.CodeOverrideConflict)
	}
	return err
}

func (r *ReservationGormRepository) UpdateOverride(
	ctx context.Context,
	override *models.BookingOverride,
) error {
	return r.db.WithContext(ctx).Save(override).Error
}

func (r *ReservationGormRepository) DeleteOverride(
	ctx context.Context,
	branchID uint,
	date string,
) error {

	res := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date).
		Delete(&models.BookingOverride{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeOverrideNotFound)
	}
	return nil
}

// --------------------------------------------------
// Materialized slots
// --------------------------------------------------

// RegenerateSlots rebuilds the slot rows for one date: delete then insert in
// a single transaction, so unchanged settings regenerate an identical set.
func (r *ReservationGormRepository) RegenerateSlots(
	ctx context.Context,
	branchID uint,
	date string,
	window domain.Window,
	intervalMinutes int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("branch_id = ? AND date = ?", branchID, date).
			Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}

		if window.Closed {
			return nil
		}

		starts := domain.GenerateSlots(window.OpenTime, window.CloseTime, intervalMinutes)
		if len(starts) == 0 {
			return nil
		}

		slots := make([]models.TimeSlot, 0, len(starts))
		for _, minute := range starts {
			slots = append(slots, models.TimeSlot{
				BranchID:  branchID,
				Date:      date,
				Time:      minute,
				MaxSeats:  window.MaxSeats,
				MaxTables: window.MaxTables,
			})
		}

		return tx.Create(&slots).Error
	})
}

func (r *ReservationGormRepository) ListSlots(
	ctx context.Context,
	branchID uint,
	date string,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date).
		Order("time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Capacity ledger
// --------------------------------------------------

type usageRow struct {
	Time       int
	SeatsUsed  int
	TablesUsed int
}

func (r *ReservationGormRepository) SlotUsage(
	ctx context.Context,
	branchID uint,
	date string,
	minute int,
) (domain.SlotUsage, error) {

	var row usageRow
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(party_size), 0) AS seats_used, COUNT(*) AS tables_used").
		Where(
			"branch_id = ? AND date = ? AND time = ? AND status IN ?",
			branchID, date, minute,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Scan(&row).Error

	if err != nil {
		return domain.SlotUsage{}, err
	}

	return domain.SlotUsage{SeatsUsed: row.SeatsUsed, TablesUsed: row.TablesUsed}, nil
}

func (r *ReservationGormRepository) UsageForDay(
	ctx context.Context,
	branchID uint,
	date string,
) (map[int]domain.SlotUsage, error) {

	var rows []usageRow
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("time, COALESCE(SUM(party_size), 0) AS seats_used, COUNT(*) AS tables_used").
		Where(
			"branch_id = ? AND date = ? AND status IN ?",
			branchID, date,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Group("time").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	usage := make(map[int]domain.SlotUsage, len(rows))
	for _, row := range rows {
		usage[row.Time] = domain.SlotUsage{
			SeatsUsed:  row.SeatsUsed,
			TablesUsed: row.TablesUsed,
		}
	}
	return usage, nil
}

// --------------------------------------------------
// Booking (create with capacity re-check)
// --------------------------------------------------

// CreateBooking locks the slot row, re-reads current usage and inserts only
// if the party still fits. The row lock serializes concurrent attempts on the
// same slot key, so the check never runs against stale counts.
func (r *ReservationGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	maxSeats int,
	maxTables int,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.TimeSlot
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"branch_id = ? AND date = ? AND time = ?",
				b.BranchID, b.Date, b.Time,
			).
			First(&slot).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Date beyond the materialized horizon; create the row so
			// later attempts have something to lock.
			slot = models.TimeSlot{
				BranchID:  b.BranchID,
				Date:      b.Date,
				Time:      b.Time,
				MaxSeats:  maxSeats,
				MaxTables: maxTables,
			}
			if err := tx.Create(&slot).Error; err != nil {
				// Another transaction materialized the same row first. Treat
				// the duplicate key as contention so the caller retries and
				// locks the winner's row.
				if isUniqueViolation(err) {
					return apperr.New(apperr.CodeBookingContention)
				}
				return err
			}
		} else if err != nil {
			return err
		}

		var row usageRow
		if err := tx.
			Model(&models.Booking{}).
			Select("COALESCE(SUM(party_size), 0) AS seats_used, COUNT(*) AS tables_used").
			Where(
				"branch_id = ? AND date = ? AND time = ? AND status IN ?",
				b.BranchID, b.Date, b.Time,
				[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			).
			Scan(&row).Error; err != nil {
			return err
		}

		usage := domain.SlotUsage{SeatsUsed: row.SeatsUsed, TablesUsed: row.TablesUsed}
		if !domain.Fits(usage, maxSeats, maxTables, b.PartySize) {
			return apperr.New(apperr.CodeCapacityExceeded)
		}

		return tx.Create(b).Error
	})

	if isTransientTxFailure(err) {
		return apperr.New(apperr.CodeBookingContention)
	}
	return err
}

// --------------------------------------------------
// Booking (lookup / state change)
// --------------------------------------------------

func (r *ReservationGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeBookingNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *ReservationGormRepository) GetBookingForBranch(
	ctx context.Context,
	bookingID uint,
	branchID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND branch_id = ?", bookingID, branchID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeBookingNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *ReservationGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *ReservationGormRepository) ListBookingsForDay(
	ctx context.Context,
	branchID uint,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Diner").
		Where("branch_id = ? AND date = ?", branchID, date).
		Order("time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Diner
// --------------------------------------------------

func (r *ReservationGormRepository) GetOrCreateDiner(
	ctx context.Context,
	branchID uint,
	name string,
	phone string,
	email string,
) (*models.Diner, error) {

	var diner models.Diner
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND phone = ?", branchID, phone).
		First(&diner).Error

	if err == nil {
		return &diner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		// A failed lookup is not a license to create; that would mint
		// duplicate diners on transient read errors.
		return nil, err
	}

	diner = models.Diner{
		BranchID: branchID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	if err := r.db.WithContext(ctx).Create(&diner).Error; err != nil {
		return nil, err
	}

	return &diner, nil
}

// --------------------------------------------------
// Postgres error classification
// --------------------------------------------------

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isTransientTxFailure matches serialization failures and deadlocks, the two
// conditions worth retrying with a fresh read.
func isTransientTxFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
