package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seatwise/table-reserve/internal/apperr"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/httperr"
	"github.com/seatwise/table-reserve/internal/httpresp"
	"github.com/seatwise/table-reserve/internal/metrics"
	"github.com/seatwise/table-reserve/internal/middleware"
	"github.com/seatwise/table-reserve/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db   *gorm.DB
	repo domain.Repository

	create   *reservation.CreateBooking
	confirm  *reservation.ConfirmBooking
	cancel   *reservation.CancelBooking
	complete *reservation.CompleteBooking
}

func NewBookingHandler(
	db *gorm.DB,
	repo domain.Repository,
	create *reservation.CreateBooking,
	confirm *reservation.ConfirmBooking,
	cancel *reservation.CancelBooking,
	complete *reservation.CompleteBooking,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		repo:     repo,
		create:   create,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	DinerName  string `json:"diner_name" binding:"required"`
	DinerPhone string `json:"diner_phone" binding:"required"`
	DinerEmail string `json:"diner_email"`

	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	PartySize int    `json:"party_size" binding:"required,min=1"`
	Notes     string `json:"notes"`
}

// --------- Handlers ---------

func (h *BookingHandler) ListByDate(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter 'date' is required.")
		return
	}
	if _, err := parseDateInBranch(branch, date); err != nil {
		httperr.BadRequest(c, apperr.CodeInvalidDate, "Invalid date.")
		return
	}

	bookings, err := h.repo.ListBookingsForDay(c.Request.Context(), branch.ID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Error listing bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// Create books a slot on behalf of the branch, same path a walk-in or phone
// reservation takes.
func (h *BookingHandler) Create(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	booking, err := h.create.Execute(c.Request.Context(), reservation.CreateBookingInput{
		BranchID:   branch.ID,
		DinerName:  req.DinerName,
		DinerPhone: req.DinerPhone,
		DinerEmail: req.DinerEmail,
		Date:       req.Date,
		Time:       req.Time,
		PartySize:  req.PartySize,
		Notes:      req.Notes,
	})
	if err != nil {
		metrics.BookingsRejected.WithLabelValues(apperr.Code(err)).Inc()
		mapBookingError(c, err)
		return
	}

	metrics.BookingsCreated.Inc()
	httpresp.Created(c, booking)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.confirm.Execute(c.Request.Context(), branch.ID, userID, bookingID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.cancel.Execute(c.Request.Context(), branch.ID, userID, bookingID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	metrics.BookingsCancelled.Inc()
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.complete.Execute(c.Request.Context(), branch.ID, userID, bookingID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return 0, false
	}
	return uint(id), true
}
