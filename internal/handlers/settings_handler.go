package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seatwise/table-reserve/internal/apperr"
	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/httperr"
	"github.com/seatwise/table-reserve/internal/httpresp"
	"github.com/seatwise/table-reserve/internal/middleware"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timeutil"
	"github.com/seatwise/table-reserve/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type SettingsHandler struct {
	db        *gorm.DB
	repo      domain.Repository
	configure *reservation.ConfigureSettings
}

func NewSettingsHandler(
	db *gorm.DB,
	repo domain.Repository,
	configure *reservation.ConfigureSettings,
) *SettingsHandler {
	return &SettingsHandler{db: db, repo: repo, configure: configure}
}

// --------- Requests ---------

type PutSettingsRequest struct {
	OpenTime         string `json:"open_time" binding:"required"`  // HH:mm
	CloseTime        string `json:"close_time" binding:"required"` // HH:mm
	IntervalMinutes  int    `json:"interval_minutes" binding:"required"`
	MaxSeatsPerSlot  int    `json:"max_seats_per_slot" binding:"required"`
	MaxTablesPerSlot int    `json:"max_tables_per_slot" binding:"required"`
}

// --------- Handlers ---------

func (h *SettingsHandler) Get(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	var settings models.BookingSettings
	if err := h.db.
		Where("branch_id = ?", branch.ID).
		First(&settings).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "settings_not_found", "No availability configured for this branch.")
			return
		}
		httperr.Internal(c, "failed_to_get_settings", "Error loading settings.")
		return
	}

	httpresp.OK(c, gin.H{
		"settings":    settings,
		"open_clock":  timeutil.FormatClock(settings.OpenTime),
		"close_clock": timeutil.FormatClock(settings.CloseTime),
	})
}

// Put replaces the branch schedule and rebuilds the slot horizon.
func (h *SettingsHandler) Put(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req PutSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	settings, err := h.configure.Execute(c.Request.Context(), reservation.ConfigureSettingsInput{
		BranchID:         branch.ID,
		UserID:           userID,
		OpenTime:         req.OpenTime,
		CloseTime:        req.CloseTime,
		IntervalMinutes:  req.IntervalMinutes,
		MaxSeatsPerSlot:  req.MaxSeatsPerSlot,
		MaxTablesPerSlot: req.MaxTablesPerSlot,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Slots exposes the materialized grid for one date together with its current
// usage, the owner-side view of what diners are being offered.
func (h *SettingsHandler) Slots(c *gin.Context) {
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

	slots, err := h.repo.ListSlots(c.Request.Context(), branch.ID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Error listing slots.")
		return
	}

	type slotView struct {
		Time       string `json:"time"`
		MaxSeats   int    `json:"max_seats"`
		MaxTables  int    `json:"max_tables"`
		SeatsUsed  int    `json:"seats_used"`
		TablesUsed int    `json:"tables_used"`
	}

	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		usage, err := h.repo.SlotUsage(c.Request.Context(), branch.ID, date, slot.Time)
		if err != nil {
			httperr.Internal(c, "failed_to_list_slots", "Error aggregating slot usage.")
			return
		}

		views = append(views, slotView{
			Time:       timeutil.FormatClock(slot.Time),
			MaxSeats:   slot.MaxSeats,
			MaxTables:  slot.MaxTables,
			SeatsUsed:  usage.SeatsUsed,
			TablesUsed: usage.TablesUsed,
		})
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": views})
}
