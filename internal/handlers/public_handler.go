package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seatwise/table-reserve/internal/apperr"
	"github.com/seatwise/table-reserve/internal/cache"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/httperr"
	"github.com/seatwise/table-reserve/internal/httpresp"
	"github.com/seatwise/table-reserve/internal/metrics"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timeutil"
	"github.com/seatwise/table-reserve/internal/usecase/reservation"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db   *gorm.DB
	repo domain.Repository

	availability *reservation.GetAvailability
	createUC     *reservation.CreateBooking
	cancelUC     *reservation.CancelBooking

	cache *cache.AvailabilityCache
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	availability *reservation.GetAvailability,
	createUC *reservation.CreateBooking,
	cancelUC *reservation.CancelBooking,
	availabilityCache *cache.AvailabilityCache,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		repo:         repo,
		availability: availability,
		createUC:     createUC,
		cancelUC:     cancelUC,
		cache:        availabilityCache,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	DinerName  string `json:"diner_name" binding:"required"`
	DinerPhone string `json:"diner_phone" binding:"required"`
	DinerEmail string `json:"diner_email"`

	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	PartySize int    `json:"party_size" binding:"required,min=1"`
	Notes     string `json:"notes"`
}

////////////////////////////////////////////////////////
// BRANCH
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBranch(c *gin.Context) {
	slug := c.Param("slug")

	var branch models.Branch
	if err := h.db.Preload("Restaurant").
		Where("slug = ?", slug).
		First(&branch).Error; err != nil {

		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"branch":     branch,
		"restaurant": branch.Restaurant,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability lists the remaining slots of a branch for one date. An
// optional ?time=HH:mm asks for the slots closest to that hour instead of the
// full day.
func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter 'date' is required.")
		return
	}

	branch, err := h.repo.GetBranchBySlug(c.Request.Context(), slug)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	partySize := 1
	if raw := c.Query("party_size"); raw != "" {
		partySize, err = strconv.Atoi(raw)
		if err != nil || partySize < 1 {
			httperr.BadRequest(c, "invalid_party_size", "Party size must be a positive number.")
			return
		}
	}

	var requestedTime *int
	if raw := c.Query("time"); raw != "" {
		minute, err := timeutil.ParseClock(raw)
		if err != nil {
			mapBookingError(c, err)
			return
		}
		requestedTime = &minute
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			httperr.BadRequest(c, "invalid_limit", "Limit must be a positive number.")
			return
		}
	}

	// The cache key carries no party size or target hour, so only the plain
	// full-day query for a single seat is cacheable.
	cacheable := partySize == 1 && requestedTime == nil && limit == 0

	if cacheable {
		if cached := h.cache.Get(c.Request.Context(), branch.ID, dateStr); cached != nil {
			metrics.AvailabilityQueries.WithLabelValues("hit").Inc()
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	result, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BranchID:      branch.ID,
		Date:          dateStr,
		PartySize:     partySize,
		RequestedTime: requestedTime,
		Limit:         limit,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	if cacheable {
		metrics.AvailabilityQueries.WithLabelValues("miss").Inc()
		h.cache.Set(c.Request.Context(), branch.ID, result.Date, result)
	} else {
		metrics.AvailabilityQueries.WithLabelValues("bypass").Inc()
	}

	c.JSON(http.StatusOK, result)
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	branch, err := h.repo.GetBranchBySlug(c.Request.Context(), slug)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	booking, err := h.createUC.Execute(c.Request.Context(), reservation.CreateBookingInput{
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
	httpresp.Created(c, gin.H{
		"reference":  booking.Reference,
		"date":       booking.Date,
		"time":       timeutil.FormatClock(booking.Time),
		"party_size": booking.PartySize,
		"status":     booking.Status,
	})
}

// GetBooking lets a diner check a reservation with nothing but its reference.
func (h *PublicHandler) GetBooking(c *gin.Context) {
	reference := c.Param("reference")

	booking, err := h.repo.GetBookingByReference(c.Request.Context(), reference)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":  booking.Reference,
		"date":       booking.Date,
		"time":       timeutil.FormatClock(booking.Time),
		"party_size": booking.PartySize,
		"status":     booking.Status,
		"notes":      booking.Notes,
	})
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	reference := c.Param("reference")

	booking, err := h.cancelUC.ExecuteByReference(c.Request.Context(), reference)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	metrics.BookingsCancelled.Inc()
	c.JSON(http.StatusOK, gin.H{
		"reference": booking.Reference,
		"status":    booking.Status,
	})
}
