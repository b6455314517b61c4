package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seatwise/table-reserve/internal/httperr"
	"github.com/seatwise/table-reserve/internal/media"
	"github.com/seatwise/table-reserve/internal/middleware"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timezone"
)

// maxPhotoUploadBytes caps the multipart photo body before decoding.
const maxPhotoUploadBytes = 10 << 20

type BranchHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewBranchHandler(db *gorm.DB, uploader *media.Uploader) *BranchHandler {
	return &BranchHandler{db: db, uploader: uploader}
}

// ownedBranch loads :branchId and enforces that it belongs to the restaurant
// in the token. Every private branch route goes through this.
func ownedBranch(c *gin.Context, db *gorm.DB) (*models.Branch, bool) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	branchID, err := strconv.ParseUint(c.Param("branchId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_branch_id", "Invalid branch id.")
		return nil, false
	}

	var branch models.Branch
	if err := db.
		Where("id = ? AND restaurant_id = ?", branchID, restaurantID).
		First(&branch).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "branch_not_found", "Branch not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_branch", "Error loading branch.")
		return nil, false
	}

	return &branch, true
}

// --------- Requests ---------

type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

type UpdateBranchRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Phone    *string `json:"phone"`
	Timezone *string `json:"timezone"`
}

// --------- Handlers ---------

func (h *BranchHandler) List(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var branches []models.Branch
	if err := h.db.
		Where("restaurant_id = ?", restaurantID).
		Order("id ASC").
		Find(&branches).Error; err != nil {

		httperr.Internal(c, "failed_to_list_branches", "Error listing branches.")
		return
	}

	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) Create(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Branch{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "branch_slug_already_exists", "Branch slug already taken.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	branch := models.Branch{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Slug:         slug,
		Address:      req.Address,
		City:         req.City,
		Phone:        req.Phone,
		Timezone:     tz,
	}

	if err := h.db.Create(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_create_branch", "Error creating branch.")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) Get(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		branch.Timezone = *req.Timezone
	}

	if err := h.db.Save(branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Error saving branch.")
		return
	}

	c.JSON(http.StatusOK, branch)
}

// UploadPhoto stores the branch photo and persists the resulting URL.
func (h *BranchHandler) UploadPhoto(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	if h.uploader == nil {
		httperr.Internal(c, "media_not_configured", "Media storage is not configured.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Multipart field 'photo' is required.")
		return
	}
	defer file.Close()

	reader := http.MaxBytesReader(c.Writer, file, maxPhotoUploadBytes)

	url, err := h.uploader.UploadBranchPhoto(c.Request.Context(), branch.ID, reader)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Could not process the uploaded image.")
		return
	}

	branch.PhotoURL = url
	if err := h.db.Save(branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Error saving branch.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
