package routes

import (
	parcelController "zap-shift/controllers/parcel"
	paymentController "zap-shift/controllers/payment"
	riderController "zap-shift/controllers/rider"
	trackingController "zap-shift/controllers/tracking"
	userController "zap-shift/controllers/user"
	"zap-shift/logger"
	"zap-shift/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	parcels := parcelController.NewParcelController(db, asyncLogger)
	payments := paymentController.NewPaymentController(db, asyncLogger)
	riders := riderController.NewRiderController(db, asyncLogger)
	trackings := trackingController.NewTrackingController(db, asyncLogger)
	users := userController.NewUserController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "zap-shift"})
	})

	api := app.Group("/api")

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcelGroup := api.Group("/parcels")
	parcelGroup.Post("/", parcels.Store)
	parcelGroup.Get("/", middleware.IsAuthenticated(), parcels.Index)
	parcelGroup.Get("/delivered/daily", middleware.IsAuthenticated(), middleware.RequireAdmin(db), parcels.DeliveredDaily)
	parcelGroup.Get("/:id", parcels.Show)
	parcelGroup.Patch("/:id/assign", parcels.AssignRider)
	parcelGroup.Patch("/:id/status", parcels.UpdateStatus)
	parcelGroup.Patch("/:id/reject", parcels.Reject)
	parcelGroup.Delete("/:id", parcels.Destroy)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	api.Post("/checkout-session", payments.CreateCheckoutSession)
	api.Patch("/verify-payment-success", payments.Reconcile)
	api.Get("/payments", middleware.IsAuthenticated(), middleware.RequireOwnEmail(), payments.Index)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	api.Get("/trackings/:trackingId/logs", trackings.Show)

	/*=============================================================================
	| Rider Routes
	===============================================================================*/
	riderGroup := api.Group("/riders")
	riderGroup.Post("/", riders.Apply)
	riderGroup.Get("/", middleware.IsAuthenticated(), middleware.RequireAdmin(db), riders.Index)
	riderGroup.Get("/available", riders.Available)
	riderGroup.Patch("/:id/status", middleware.IsAuthenticated(), middleware.RequireAdmin(db), riders.UpdateStatus)
	riderGroup.Get("/:id/parcels", middleware.IsAuthenticated(), middleware.RequireRider(db), riders.Parcels)
	riderGroup.Delete("/:id", middleware.IsAuthenticated(), middleware.RequireAdmin(db), riders.Destroy)

	/*=============================================================================
	| User Routes
	===============================================================================*/
	userGroup := api.Group("/users")
	userGroup.Post("/", users.Upsert)
	userGroup.Get("/", middleware.IsAuthenticated(), middleware.RequireAdmin(db), users.Index)
	userGroup.Get("/:email/role", middleware.IsAuthenticated(), users.Role)
	userGroup.Patch("/:id/role", middleware.IsAuthenticated(), middleware.RequireAdmin(db), users.UpdateRole)
	userGroup.Delete("/:id", middleware.IsAuthenticated(), middleware.RequireAdmin(db), users.Destroy)
}
