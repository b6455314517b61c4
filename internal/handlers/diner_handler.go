package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/seatwise/table-reserve/internal/models"
)

type DinerHandler struct {
	db *gorm.DB
}

func NewDinerHandler(db *gorm.DB) *DinerHandler {
	return &DinerHandler{db: db}
}

// ======================================================
// LIST DINERS (OWNER)
// ======================================================
func (h *DinerHandler) List(c *gin.Context) {
	branch, ok := ownedBranch(c, h.db)
	if !ok {
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("branch_id = ?", branch.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var diners []models.Diner
	if err := q.
		Order("created_at DESC").
		Find(&diners).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_diners",
		})
		return
	}

	c.JSON(http.StatusOK, diners)
}
