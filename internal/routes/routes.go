package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/seatwise/table-reserve/internal/audit"
	"github.com/seatwise/table-reserve/internal/cache"
	"github.com/seatwise/table-reserve/internal/clock"
	"github.com/seatwise/table-reserve/internal/config"
	"github.com/seatwise/table-reserve/internal/handlers"
	infraRepo "github.com/seatwise/table-reserve/internal/infra/repository"
	"github.com/seatwise/table-reserve/internal/media"
	"github.com/seatwise/table-reserve/internal/middleware"
	ucReservation "github.com/seatwise/table-reserve/internal/usecase/reservation"
)

// availabilityCacheTTL is deliberately short; the cache only absorbs bursts
// of identical widget queries, invalidation handles correctness.
const availabilityCacheTTL = 30 * time.Second

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	clk := clock.System()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.NewAvailabilityCache(rdb, availabilityCacheTTL)

	uploader := media.NewUploader(media.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})

	// ======================================================
	// USE CASES (RESERVATIONS)
	// ======================================================
	getAvailabilityUC := ucReservation.NewGetAvailability(
		reservationRepo,
		clk,
	)

	createBookingUC := ucReservation.NewCreateBooking(
		reservationRepo,
		clk,
		auditDispatcher,
		availabilityCache,
	)

	confirmBookingUC := ucReservation.NewConfirmBooking(
		reservationRepo,
		auditDispatcher,
	)

	cancelBookingUC := ucReservation.NewCancelBooking(
		reservationRepo,
		clk,
		auditDispatcher,
		availabilityCache,
	)

	completeBookingUC := ucReservation.NewCompleteBooking(
		reservationRepo,
		clk,
		auditDispatcher,
	)

	configureSettingsUC := ucReservation.NewConfigureSettings(
		reservationRepo,
		clk,
		auditDispatcher,
		availabilityCache,
		cfg.SlotHorizonDays,
	)

	createOverrideUC := ucReservation.NewCreateOverride(
		reservationRepo,
		clk,
		auditDispatcher,
		availabilityCache,
	)

	updateOverrideUC := ucReservation.NewUpdateOverride(
		reservationRepo,
		clk,
		auditDispatcher,
		availabilityCache,
	)

	deleteOverrideUC := ucReservation.NewDeleteOverride(
		reservationRepo,
		clk,
		auditDispatcher,
		availabilityCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	branchHandler := handlers.NewBranchHandler(db, uploader)
	dinerHandler := handlers.NewDinerHandler(db)

	settingsHandler := handlers.NewSettingsHandler(db, reservationRepo, configureSettingsUC)

	overrideHandler := handlers.NewOverrideHandler(
		db,
		reservationRepo,
		createOverrideUC,
		updateOverrideUC,
		deleteOverrideUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		db,
		reservationRepo,
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		completeBookingUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		reservationRepo,
		getAvailabilityUC,
		createBookingUC,
		cancelBookingUC,
		availabilityCache,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetBranch)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)

			publicAPI.GET("/bookings/:reference", publicHandler.GetBooking)
			publicAPI.DELETE("/bookings/:reference", publicHandler.CancelBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/branches", branchHandler.List)
			secured.POST("/me/branches", branchHandler.Create)
			secured.GET("/me/branches/:branchId", branchHandler.Get)
			secured.PATCH("/me/branches/:branchId", branchHandler.Update)
			secured.POST("/me/branches/:branchId/photo", branchHandler.UploadPhoto)

			secured.GET("/me/branches/:branchId/settings", settingsHandler.Get)
			secured.PUT("/me/branches/:branchId/settings", settingsHandler.Put)
			secured.GET("/me/branches/:branchId/slots", settingsHandler.Slots)

			secured.GET("/me/branches/:branchId/overrides", overrideHandler.List)
			secured.POST("/me/branches/:branchId/overrides", overrideHandler.Create)
			secured.PATCH("/me/branches/:branchId/overrides/:date", overrideHandler.Update)
			secured.DELETE("/me/branches/:branchId/overrides/:date", overrideHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/me/branches/:branchId/bookings", bookingHandler.ListByDate)
			secured.POST("/me/branches/:branchId/bookings", bookingHandler.Create)
			secured.PATCH("/me/branches/:branchId/bookings/:bookingId/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/branches/:branchId/bookings/:bookingId/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/branches/:branchId/bookings/:bookingId/complete", bookingHandler.Complete)

			secured.GET("/me/branches/:branchId/diners", dinerHandler.List)
			secured.GET("/me/branches/:branchId/audit-logs", auditLogsHandler.List)
		}
	}
}
