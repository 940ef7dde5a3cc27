package tracking

import (
	"zap-shift/httperror"
	"zap-shift/logger"
	trackingService "zap-shift/services/tracking"
	"zap-shift/types"
	"zap-shift/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TrackingController serves the public tracking timeline
type TrackingController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *trackingService.TrackingService
}

// NewTrackingController creates a new tracking controller
func NewTrackingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TrackingController {
	return &TrackingController{
		DB:      db,
		Logger:  asyncLogger,
		Service: trackingService.NewTrackingService(db),
	}
}

func (tc *TrackingController) logAPIRequest(c *fiber.Ctx) {
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Helper function to send response and log in one call
func (tc *TrackingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	tc.logAPIRequest(c)
	return result
}

// Show returns a parcel's event timeline oldest-first. An unknown tracking id
// yields an empty timeline, not an error; the id format gives nothing away.
func (tc *TrackingController) Show(c *fiber.Ctx) error {
	trackingID := c.Params("trackingId")
	if trackingID == "" {
		return tc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Tracking id is required",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	events, err := tc.Service.ListByTrackingID(trackingID)
	if err != nil {
		status := httperror.StatusOf(err)
		logger.Error("Failed to fetch tracking events", err)
		return tc.sendResponseWithLog(c, status, types.ApiResponse{
			Message: "Failed to fetch tracking events",
			Status:  status,
			Data:    nil,
		})
	}

	return tc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Tracking events fetched successfully",
		Status:  fiber.StatusOK,
		Data:    events,
	})
}
