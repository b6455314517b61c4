package apperr

import "errors"

// Business error codes surfaced to API clients. Handlers map them to HTTP
// statuses; the core never speaks HTTP.
const (
	CodeInvalidTimeFormat   = "invalid_time_format"
	CodeInvalidDate         = "invalid_date"
	CodeSettingsNotFound    = "settings_not_found"
	CodeOverrideConflict    = "override_conflict"
	CodeOverrideNotFound    = "override_not_found"
	CodeCapacityExceeded    = "capacity_exceeded"
	CodeBookingNotFound     = "booking_not_found"
	CodeAlreadyTerminal     = "already_terminal"
	CodeInvalidState        = "invalid_state"
	CodeBranchClosed        = "branch_closed"
	CodeOutsideOpeningHours = "outside_opening_hours"
	CodeSlotInPast          = "slot_in_past"
	CodeBranchNotFound      = "branch_not_found"
	CodeBookingContention   = "booking_contention"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func New(code string) error {
	return BusinessError{Code: code}
}

func Is(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Code extracts the business code from err, or "" when err is not a
// BusinessError.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
