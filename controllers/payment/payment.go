package payment

import (
	"os"

	"zap-shift/httpServices/gateway"
	"zap-shift/httperror"
	"zap-shift/logger"
	paymentService "zap-shift/services/payment"
	"zap-shift/services/tracking"
	"zap-shift/types"
	paymentTypes "zap-shift/types/payment"
	"zap-shift/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PaymentController handles checkout and payment history HTTP requests
type PaymentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *paymentService.PaymentService
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PaymentController {
	gatewayClient := gateway.NewClient(os.Getenv("GATEWAY_BASE_URL"), os.Getenv("GATEWAY_SECRET_KEY"))
	return &PaymentController{
		DB:      db,
		Logger:  asyncLogger,
		Service: paymentService.NewPaymentService(db, gatewayClient, tracking.NewTrackingService(db)),
	}
}

func (pc *PaymentController) logAPIRequest(c *fiber.Ctx) {
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Helper function to send response and log in one call
func (pc *PaymentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.logAPIRequest(c)
	return result
}

func (pc *PaymentController) sendError(c *fiber.Ctx, err error, fallback string) error {
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

// CreateCheckoutSession builds a hosted checkout page for one parcel and
// returns its redirect URL.
func (pc *PaymentController) CreateCheckoutSession(c *fiber.Ctx) error {
	var req paymentTypes.CheckoutSessionRequest
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

	session, err := pc.Service.CreateCheckoutSession(req.ParcelID)
	if err != nil {
		return pc.sendError(c, err, "Failed to create checkout session")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Checkout session created successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"session_id": session.ID,
			"url":        session.URL,
		},
	})
}

// Reconcile confirms a checkout session after the gateway redirect. Calling
// it again for the same session reports success without duplicating the
// payment.
func (pc *PaymentController) Reconcile(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "session_id query parameter is required",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	result, err := pc.Service.Reconcile(sessionID)
	if err != nil {
		return pc.sendError(c, err, "Failed to reconcile payment")
	}

	if result.Success {
		logger.Success("Payment recorded for tracking id " + result.TrackingID)
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: result.Message,
		Status:  fiber.StatusOK,
		Data:    result,
	})
}

// Index lists the caller's payments, newest first. The ownership middleware
// already guarantees the email parameter matches the token claim.
func (pc *PaymentController) Index(c *fiber.Ctx) error {
	email := c.Query("email")
	payments, err := pc.Service.ListByEmail(email)
	if err != nil {
		return pc.sendError(c, err, "Failed to fetch payments")
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Payments fetched successfully",
		Status:  fiber.StatusOK,
		Data:    payments,
	})
}
