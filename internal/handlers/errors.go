package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/httperr"
)

// mapBookingError translates business codes into the HTTP shape the clients
// expect. "Never configured" and "closed today" stay distinguishable, and a
// capacity race is a conflict, not a server fault.
func mapBookingError(c *gin.Context, err error) {
	switch apperr.Code(err) {
	case apperr.CodeBranchNotFound:
		httperr.NotFound(c, apperr.CodeBranchNotFound, "Branch not found.")
	case apperr.CodeSettingsNotFound:
		httperr.NotFound(c, apperr.CodeSettingsNotFound, "No availability configured for this branch.")
	case apperr.CodeInvalidDate:
		httperr.BadRequest(c, apperr.CodeInvalidDate, "Invalid date.")
	case apperr.CodeInvalidTimeFormat:
		httperr.BadRequest(c, apperr.CodeInvalidTimeFormat, "Invalid time, expected HH:mm.")
	case apperr.CodeBranchClosed:
		httperr.BadRequest(c, apperr.CodeBranchClosed, "The branch is closed on that date.")
	case apperr.CodeOutsideOpeningHours:
		httperr.BadRequest(c, apperr.CodeOutsideOpeningHours, "Requested time is outside opening hours.")
	case apperr.CodeSlotInPast:
		httperr.BadRequest(c, apperr.CodeSlotInPast, "Requested time is in the past.")
	case apperr.CodeCapacityExceeded:
		httperr.Conflict(c, apperr.CodeCapacityExceeded, "The slot no longer has capacity for this party.")
	case apperr.CodeBookingContention:
		httperr.Conflict(c, apperr.CodeBookingContention, "The slot is being booked right now, try again.")
	case apperr.CodeBookingNotFound:
		httperr.NotFound(c, apperr.CodeBookingNotFound, "Booking not found.")
	case apperr.CodeAlreadyTerminal:
		httperr.BadRequest(c, apperr.CodeAlreadyTerminal, "Booking is already cancelled or completed.")
	case apperr.CodeInvalidState:
		httperr.BadRequest(c, apperr.CodeInvalidState, "Invalid state for this operation.")
	case apperr.CodeOverrideConflict:
		httperr.Conflict(c, apperr.CodeOverrideConflict, "An override already exists for this date.")
	case apperr.CodeOverrideNotFound:
		httperr.NotFound(c, apperr.CodeOverrideNotFound, "Override not found.")
	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
