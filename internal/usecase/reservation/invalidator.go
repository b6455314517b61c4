package reservation

import "context"

// AvailabilityInvalidator drops cached availability for a (branch, date) after
// any mutation that changes remaining capacity or the slot set. The cache is
// an external wrapper; the core computation itself is always fresh.
type AvailabilityInvalidator interface {
	InvalidateAvailability(ctx context.Context, branchID uint, date string)
}

// NoopInvalidator satisfies AvailabilityInvalidator when no cache is wired.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateAvailability(context.Context, uint, string) {}
