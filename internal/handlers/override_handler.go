package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
	"github.com/seatwise/table-reserve/internal/httperr"
	"github.com/seatwise/table-reserve/internal/httpresp"
	"github.com/seatwise/table-reserve/internal/middleware"
	"github.com/seatwise/table-reserve/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type OverrideHandler struct {
	db   *gorm.DB
	repo domain.Repository

	create *reservation.CreateOverride
	update *reservation.UpdateOverride
	delete *reservation.DeleteOverride
}

func NewOverrideHandler(
	db *gorm.DB,
	repo domain.Repository,
	create *reservation.CreateOverride,
	update *reservation.UpdateOverride,
	del *reservation.DeleteOverride,
) *OverrideHandler {
	return &OverrideHandler{
		db:     db,
		repo:   repo,
		create: create,
		update: update,
		delete: del,
	}
}

// --------- Requests ---------

type OverrideRequest struct {
	// Date comes from the body on create and from the path on update.
	Date         string `json:"date"`                             // YYYY-MM-DD
	OverrideType string `json:"override_type" binding:"required"` // closed | modified

	StartTime *string `json:"start_time"` // HH:mm
	EndTime   *string `json:"end_time"`   // HH:mm

	NewMaxSeats  *int `json:"new_max_seats"`
	NewMaxTables *int `json:"new_max_tables"`

	Note string `json:"note"`
}

// --------- Handlers ---------

func (h *OverrideHandler) List(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	overrides, err := h.repo.ListOverrides(c.Request.Context(), branch.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_overrides", "Error listing overrides.")
		return
	}

	httpresp.List(c, overrides)
}

func (h *OverrideHandler) Create(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	override, err := h.create.Execute(c.Request.Context(), reservation.OverrideInput{
		BranchID:     branch.ID,
		UserID:       userID,
		Date:         req.Date,
		OverrideType: req.OverrideType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		NewMaxSeats:  req.NewMaxSeats,
		NewMaxTables: req.NewMaxTables,
		Note:         req.Note,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, override)
}

func (h *OverrideHandler) Update(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	date := c.Param("date")

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	// The path date wins; the body may omit it.
	override, err := h.update.Execute(c.Request.Context(), reservation.OverrideInput{
		BranchID:     branch.ID,
		UserID:       userID,
		Date:         date,
		OverrideType: req.OverrideType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		NewMaxSeats:  req.NewMaxSeats,
		NewMaxTables: req.NewMaxTables,
		Note:         req.Note,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, override)
}

func (h *OverrideHandler) Delete(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	date := c.Param("date")

	if err := h.delete.Execute(c.Request.Context(), branch.ID, userID, date); err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "date": date})
}
