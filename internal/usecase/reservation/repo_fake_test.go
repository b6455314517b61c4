package reservation

import (
	"context"
	"fmt"
	"sync"

	"github.com/seatwise/table-reserve/internal/apperr"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/models"
)

// fakeRepo is an in-memory Repository for use case tests. Capacity checks
// mirror the store's behavior: CreateBooking re-checks against current usage
// and can be primed with transient errors to exercise the retry loop.
type fakeRepo struct {
	mu sync.Mutex

	branches  map[uint]*models.Branch
	settings  map[uint]*models.BookingSettings
	overrides map[string]*models.BookingOverride
	usage     map[string]map[int]domain.SlotUsage
	bookings  []*models.Booking
	diners    map[string]*models.Diner
	slots     map[string][]models.TimeSlot

	// createErrs is consumed one per CreateBooking call before the capacity
	// check runs.
	createErrs []error

	// dinerErr fails the next diner lookup, simulating a transient store
	// failure outside the not-found path.
	dinerErr error

	createCalls int
	regenerated []string

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		branches:  map[uint]*models.Branch{},
		settings:  map[uint]*models.BookingSettings{},
		overrides: map[string]*models.BookingOverride{},
		usage:     map[string]map[int]domain.SlotUsage{},
		diners:    map[string]*models.Diner{},
		slots:     map[string][]models.TimeSlot{},
	}
}

func dayKey(branchID uint, date string) string {
	return fmt.Sprintf("%d:%s", branchID, date)
}

func (f *fakeRepo) addBranch(id uint, tz string) *models.Branch {
	b := &models.Branch{ID: id, Name: "Main", Slug: fmt.Sprintf("branch-%d", id), Timezone: tz}
	f.branches[id] = b
	return b
}

func (f *fakeRepo) dayUsage(branchID uint, date string) map[int]domain.SlotUsage {
	key := dayKey(branchID, date)
	if f.usage[key] == nil {
		f.usage[key] = map[int]domain.SlotUsage{}
	}
	return f.usage[key]
}

func (f *fakeRepo) setUsage(branchID uint, date string, minute int, u domain.SlotUsage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dayUsage(branchID, date)[minute] = u
}

// -------- Branch --------

func (f *fakeRepo) GetBranchByID(_ context.Context, id uint) (*models.Branch, error) {
	if b, ok := f.branches[id]; ok {
		return b, nil
	}
	return nil, apperr.New(apperr.CodeBranchNotFound)
}

func (f *fakeRepo) GetBranchBySlug(_ context.Context, slug string) (*models.Branch, error) {
	for _, b := range f.branches {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, apperr.New(apperr.CodeBranchNotFound)
}

// -------- Settings --------

func (f *fakeRepo) GetSettings(_ context.Context, branchID uint) (*models.BookingSettings, error) {
	if s, ok := f.settings[branchID]; ok {
		return s, nil
	}
	return nil, apperr.New(apperr.CodeSettingsNotFound)
}

func (f *fakeRepo) SaveSettings(_ context.Context, settings *models.BookingSettings) error {
	f.settings[settings.BranchID] = settings
	return nil
}

// -------- Overrides --------

func (f *fakeRepo) GetOverride(_ context.Context, branchID uint, date string) (*models.BookingOverride, error) {
	return f.overrides[dayKey(branchID, date)], nil
}

func (f *fakeRepo) ListOverrides(_ context.Context, branchID uint) ([]models.BookingOverride, error) {
	var out []models.BookingOverride
	for _, o := range f.overrides {
		if o.BranchID == branchID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateOverride(_ context.Context, override *models.BookingOverride) error {
	key := dayKey(override.BranchID, override.Date)
	if _, ok := f.overrides[key]; ok {
		return apperr.New(apperr.CodeOverrideConflict)
	}
	f.nextID++
	override.ID = f.nextID
	f.overrides[key] = override
	return nil
}

func (f *fakeRepo) UpdateOverride(_ context.Context, override *models.BookingOverride) error {
	f.overrides[dayKey(override.BranchID, override.Date)] = override
	return nil
}

func (f *fakeRepo) DeleteOverride(_ context.Context, branchID uint, date string) error {
	delete(f.overrides, dayKey(branchID, date))
	return nil
}

// -------- Materialized slots --------

// RegenerateSlots mirrors the store: replace the date's slot set wholesale,
// leaving nothing behind from the previous generation.
func (f *fakeRepo) RegenerateSlots(
	_ context.Context,
	branchID uint,
	date string,
	window domain.Window,
	intervalMinutes int,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(branchID, date)
	f.regenerated = append(f.regenerated, key)

	delete(f.slots, key)
	if window.Closed {
		return nil
	}

	for _, minute := range domain.GenerateSlots(window.OpenTime, window.CloseTime, intervalMinutes) {
		f.slots[key] = append(f.slots[key], models.TimeSlot{
			BranchID:  branchID,
			Date:      date,
			Time:      minute,
			MaxSeats:  window.MaxSeats,
			MaxTables: window.MaxTables,
		})
	}
	return nil
}

func (f *fakeRepo) ListSlots(_ context.Context, branchID uint, date string) ([]models.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.TimeSlot, len(f.slots[dayKey(branchID, date)]))
	copy(out, f.slots[dayKey(branchID, date)])
	return out, nil
}

// -------- Capacity ledger --------

func (f *fakeRepo) SlotUsage(_ context.Context, branchID uint, date string, minute int) (domain.SlotUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dayUsage(branchID, date)[minute], nil
}

func (f *fakeRepo) UsageForDay(_ context.Context, branchID uint, date string) (map[int]domain.SlotUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[int]domain.SlotUsage{}
	for minute, u := range f.dayUsage(branchID, date) {
		out[minute] = u
	}
	return out, nil
}

// -------- Booking --------

func (f *fakeRepo) CreateBooking(
	_ context.Context,
	b *models.Booking,
	maxSeats int,
	maxTables int,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++

	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}

	day := f.dayUsage(b.BranchID, b.Date)
	u := day[b.Time]

	if !domain.Fits(u, maxSeats, maxTables, b.PartySize) {
		return apperr.New(apperr.CodeCapacityExceeded)
	}

	f.nextID++
	b.ID = f.nextID

	u.SeatsUsed += b.PartySize
	u.TablesUsed++
	day[b.Time] = u

	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeRepo) GetBookingByReference(_ context.Context, reference string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, apperr.New(apperr.CodeBookingNotFound)
}

func (f *fakeRepo) GetBookingForBranch(_ context.Context, bookingID, branchID uint) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == bookingID && b.BranchID == branchID {
			return b, nil
		}
	}
	return nil, apperr.New(apperr.CodeBookingNotFound)
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	for i, existing := range f.bookings {
		if existing.ID == b.ID {
			f.bookings[i] = b

			// freed capacity mirrors the store's usage aggregation over
			// active bookings
			if !domain.Status(b.Status).IsActive() {
				day := f.dayUsage(b.BranchID, b.Date)
				u := day[b.Time]
				u.SeatsUsed -= b.PartySize
				u.TablesUsed--
				day[b.Time] = u
			}
			return nil
		}
	}
	return apperr.New(apperr.CodeBookingNotFound)
}

func (f *fakeRepo) ListBookingsForDay(_ context.Context, branchID uint, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BranchID == branchID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

// -------- Diner --------

func (f *fakeRepo) GetOrCreateDiner(
	_ context.Context,
	branchID uint,
	name, phone, email string,
) (*models.Diner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dinerErr != nil {
		err := f.dinerErr
		f.dinerErr = nil
		return nil, err
	}

	key := fmt.Sprintf("%d:%s", branchID, phone)
	if d, ok := f.diners[key]; ok {
		return d, nil
	}

	f.nextID++
	d := &models.Diner{ID: f.nextID, BranchID: branchID, Name: name, Phone: phone, Email: email}
	f.diners[key] = d
	return d, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeInvalidator records which (branch, date) pairs were dropped.
type fakeInvalidator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeInvalidator) InvalidateAvailability(_ context.Context, branchID uint, date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, dayKey(branchID, date))
}
