package rider

import (
	"strconv"

	"zap-shift/httperror"
	"zap-shift/logger"
	riderModel "zap-shift/models/rider"
	riderService "zap-shift/services/rider"
	"zap-shift/types"
	riderTypes "zap-shift/types/rider"
	"zap-shift/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RiderController handles rider application and admission HTTP requests
type RiderController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *riderService.RiderService
}

// NewRiderController creates a new rider controller
func NewRiderController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RiderController {
	return &RiderController{
		DB:      db,
		Logger:  asyncLogger,
		Service: riderService.NewRiderService(db),
	}
}

func (rc *RiderController) logAPIRequest(c *fiber.Ctx) {
	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Helper function to send response and log in one call
func (rc *RiderController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	rc.logAPIRequest(c)
	return result
}

func (rc *RiderController) sendError(c *fiber.Ctx, err error, fallback string) error {
	status := httperror.StatusOf(err)
	message := fallback
	if status != fiber.StatusInternalServerError {
		message = err.Error()
	} else {
		logger.Error(fallback, err)
	}
	return rc.sendResponseWithLog(c, status, types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    nil,
	})
}

// Apply stores a new rider application in the pending state.
func (rc *RiderController) Apply(c *fiber.Ctx) error {
	var req riderTypes.RiderApplyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if !utils.ValidatePhoneNumber(req.Phone) {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid phone number format",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	r, err := rc.Service.Apply(req)
	if err != nil {
		return rc.sendError(c, err, "Failed to store rider application")
	}

	logger.Success("Rider application stored for " + r.Email)
	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Rider application submitted successfully",
		Status:  fiber.StatusCreated,
		Data:    r,
	})
}

// Index lists riders filtered by admission status, district and work status.
func (rc *RiderController) Index(c *fiber.Ctx) error {
	riders, err := rc.Service.List(c.Query("status"), c.Query("district"), c.Query("work_status"))
	if err != nil {
		return rc.sendError(c, err, "Failed to fetch riders")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Riders fetched successfully",
		Status:  fiber.StatusOK,
		Data:    riders,
	})
}

// Available lists approved riders free to take a parcel, optionally narrowed
// by district.
func (rc *RiderController) Available(c *fiber.Ctx) error {
	riders, err := rc.Service.AvailableByDistrict(c.Query("district"))
	if err != nil {
		return rc.sendError(c, err, "Failed to fetch available riders")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Available riders fetched successfully",
		Status:  fiber.StatusOK,
		Data:    riders,
	})
}

// UpdateStatus approves or rejects an application and adjusts the linked
// user's role.
func (rc *RiderController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid rider id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	var req riderTypes.RiderStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	r, err := rc.Service.UpdateStatus(uint(id), riderModel.Status(req.Status), req.Email)
	if err != nil {
		return rc.sendError(c, err, "Failed to update rider status")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider status updated successfully",
		Status:  fiber.StatusOK,
		Data:    r,
	})
}

// Parcels lists a rider's assigned parcels. Delivered parcels are excluded
// unless include_completed=true.
func (rc *RiderController) Parcels(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid rider id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	includeCompleted := c.QueryBool("include_completed", false)

	parcels, err := rc.Service.ActiveParcels(uint(id), includeCompleted)
	if err != nil {
		return rc.sendError(c, err, "Failed to fetch rider parcels")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider parcels fetched successfully",
		Status:  fiber.StatusOK,
		Data:    parcels,
	})
}

// Destroy deletes a rider record.
func (rc *RiderController) Destroy(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid rider id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := rc.Service.Delete(uint(id)); err != nil {
		return rc.sendError(c, err, "Failed to delete rider")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider deleted successfully",
		Status:  fiber.StatusOK,
		Data:    nil,
	})
}
