package parcel

import (
	"strconv"

	"zap-shift/httperror"
	"zap-shift/logger"
	parcelModel "zap-shift/models/parcel"
	parcelService "zap-shift/services/parcel"
	"zap-shift/services/tracking"
	"zap-shift/types"
	parcelTypes "zap-shift/types/parcel"
	"zap-shift/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ParcelController handles parcel-related HTTP requests
type ParcelController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *parcelService.ParcelService
}

// NewParcelController creates a new parcel controller
func NewParcelController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		DB:      db,
		Logger:  asyncLogger,
		Service: parcelService.NewParcelService(db, tracking.NewTrackingService(db)),
	}
}

func (pc *ParcelController) logAPIRequest(c *fiber.Ctx) {
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Helper function to send response and log in one call
func (pc *ParcelController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.logAPIRequest(c)
	return result
}

func (pc *ParcelController) sendError(c *fiber.Ctx, err error, fallback string) error {
	status := httperror.StatusOf(err)
	message := fallback
	if status != fiber.StatusInternalServerError {
		message = err.Error()
	} else {
		logger.Error(fallback, err)
	}
	return pc.sendResponseWithLog(c, status, types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    nil,
	})
}

// Store books a new parcel for the sender.
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var req parcelTypes.ParcelCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	p, err := pc.Service.Create(req)
	if err != nil {
		return pc.sendError(c, err, "Failed to create parcel")
	}

	logger.Success("Parcel created with tracking id " + p.TrackingID)
	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Parcel created successfully",
		Status:  fiber.StatusCreated,
		Data:    p,
	})
}

// Index lists parcels, optionally filtered by sender email and delivery status.
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	parcels, err := pc.Service.List(c.Query("email"), c.Query("delivery_status"))
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch parcels")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcels fetched successfully",
		Status:  fiber.StatusOK,
		Data:    parcels,
	})
}

// Show fetches one parcel by id.
func (pc *ParcelController) Show(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid parcel id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	p, err := pc.Service.GetByID(uint(id))
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch parcel")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel fetched successfully",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// AssignRider puts a rider on a paid parcel.
func (pc *ParcelController) AssignRider(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid parcel id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	var req parcelTypes.AssignRiderRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	p, err := pc.Service.Assign(uint(id), req.RiderID)
	if err != nil {
		return pc.sendError(c, err, "Failed to assign rider")
	}

	logger.Success("Rider assigned to parcel " + p.TrackingID)
	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider assigned successfully",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// UpdateStatus moves a parcel to a new delivery status.
func (pc *ParcelController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid parcel id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	var req parcelTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	p, err := pc.Service.UpdateStatus(uint(id), parcelModel.DeliveryStatus(req.Status), req.RiderID)
	if err != nil {
		return pc.sendError(c, err, "Failed to update delivery status")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Delivery status updated successfully",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// Reject takes an assigned rider off a parcel and records the rejection.
func (pc *ParcelController) Reject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid parcel id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	var req parcelTypes.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	status := req.Status
	if status == "" {
		status = string(parcelModel.DeliveryStatusRejected)
	}

	p, err := pc.Service.Reject(uint(id), parcelModel.DeliveryStatus(status))
	if err != nil {
		return pc.sendError(c, err, "Failed to reject parcel")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel rejected successfully",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// Destroy deletes a parcel. Its tracking history is kept.
func (pc *ParcelController) Destroy(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid parcel id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := pc.Service.Delete(uint(id)); err != nil {
		return pc.sendError(c, err, "Failed to delete parcel")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel deleted successfully",
		Status:  fiber.StatusOK,
		Data:    nil,
	})
}

// DeliveredDaily reports delivered-parcel counts per day over a trailing
// window (default 7 days).
func (pc *ParcelController) DeliveredDaily(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 7
	}

	counts, err := pc.Service.DeliveredPerDay(days)
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch delivery counts")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Delivery counts fetched successfully",
		Status:  fiber.StatusOK,
		Data:    counts,
	})
}
