package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/seatwise/table-reserve/internal/config"
	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timezone"
	"github.com/seatwise/table-reserve/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	RestaurantName string `json:"restaurant_name" binding:"required"`
	RestaurantSlug string `json:"restaurant_slug" binding:"required"`
	Cuisine        string `json:"cuisine"`

	BranchName     string `json:"branch_name" binding:"required"`
	BranchSlug     string `json:"branch_slug" binding:"required"`
	BranchAddress  string `json:"branch_address"`
	BranchCity     string `json:"branch_city"`
	BranchPhone    string `json:"branch_phone"`
	BranchTimezone string `json:"branch_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates the restaurant, its first branch and the owner account in
// one request, then signs the owner in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	restaurantSlug := strings.ToLower(strings.TrimSpace(req.RestaurantSlug))
	branchSlug := strings.ToLower(strings.TrimSpace(req.BranchSlug))

	var count int64
	h.db.Model(&models.Restaurant{}).Where("slug = ?", restaurantSlug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	h.db.Model(&models.Branch{}).Where("slug = ?", branchSlug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_slug_already_exists"})
		return
	}

	tz := strings.TrimSpace(req.BranchTimezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_timezone"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.HasResolvableEmailDomain(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not look valid.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	restaurant := models.Restaurant{
		Name:    req.RestaurantName,
		Slug:    restaurantSlug,
		Cuisine: req.Cuisine,
	}

	branch := models.Branch{
		Name:     req.BranchName,
		Slug:     branchSlug,
		Address:  req.BranchAddress,
		City:     req.BranchCity,
		Phone:    req.BranchPhone,
		Timezone: tz,
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}

		branch.RestaurantID = restaurant.ID
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}

		user.RestaurantID = restaurant.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_register"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"restaurant_id": user.RestaurantID,
		},
		"restaurant": gin.H{
			"id":      restaurant.ID,
			"name":    restaurant.Name,
			"slug":    restaurant.Slug,
			"cuisine": restaurant.Cuisine,
		},
		"branch": gin.H{
			"id":       branch.ID,
			"name":     branch.Name,
			"slug":     branch.Slug,
			"timezone": branch.Timezone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Restaurant").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"restaurant_id": user.RestaurantID,
		},
		"restaurant": gin.H{
			"id":      user.Restaurant.ID,
			"name":    user.Restaurant.Name,
			"slug":    user.Restaurant.Slug,
			"cuisine": user.Restaurant.Cuisine,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"restaurantId": user.RestaurantID,
		"role":         user.Role,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
