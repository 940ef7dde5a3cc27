package user

import (
	"strconv"

	"zap-shift/httperror"
	"zap-shift/logger"
	userModel "zap-shift/models/user"
	userService "zap-shift/services/user"
	"zap-shift/types"
	userTypes "zap-shift/types/user"
	"zap-shift/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController handles account mirror HTTP requests
type UserController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *userService.UserService
}

// NewUserController creates a new user controller
func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{
		DB:      db,
		Logger:  asyncLogger,
		Service: userService.NewUserService(db),
	}
}

func (uc *UserController) logAPIRequest(c *fiber.Ctx) {
	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Helper function to send response and log in one call
func (uc *UserController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	uc.logAPIRequest(c)
	return result
}

func (uc *UserController) sendError(c *fiber.Ctx, err error, fallback string) error {
	status := httperror.StatusOf(err)
	message := fallback
	if status != fiber.StatusInternalServerError {
		message = err.Error()
	} else {
		logger.Error(fallback, err)
	}
	return uc.sendResponseWithLog(c, status, types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    nil,
	})
}

// Upsert records a login: first sight creates the account with the default
// role, later calls refresh the last login stamp.
func (uc *UserController) Upsert(c *fiber.Ctx) error {
	var req userTypes.UserUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	u, created, err := uc.Service.Upsert(req)
	if err != nil {
		return uc.sendError(c, err, "Failed to upsert user")
	}

	status := fiber.StatusOK
	message := "Last login updated"
	if created {
		status = fiber.StatusCreated
		message = "User created successfully"
	}

	return uc.sendResponseWithLog(c, status, types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    u,
	})
}

// Index lists users, optionally narrowed by a partial email match.
func (uc *UserController) Index(c *fiber.Ctx) error {
	users, err := uc.Service.Search(c.Query("email"))
	if err != nil {
		return uc.sendError(c, err, "Failed to fetch users")
	}

	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "Users fetched successfully",
		Status:  fiber.StatusOK,
		Data:    users,
	})
}

// Role returns the role for an email, defaulting to user for unknown emails.
func (uc *UserController) Role(c *fiber.Ctx) error {
	role, err := uc.Service.RoleByEmail(c.Params("email"))
	if err != nil {
		return uc.sendError(c, err, "Failed to fetch user role")
	}

	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "User role fetched successfully",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"role": role},
	})
}

// UpdateRole changes an account's role; admin only.
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	var req userTypes.RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	u, err := uc.Service.UpdateRole(uint(id), userModel.Role(req.Role))
	if err != nil {
		return uc.sendError(c, err, "Failed to update user role")
	}

	logger.Success("Role updated for " + u.Email)
	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "User role updated successfully",
		Status:  fiber.StatusOK,
		Data:    u,
	})
}

// Destroy deletes an account.
func (uc *UserController) Destroy(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid user id",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := uc.Service.Delete(uint(id)); err != nil {
		return uc.sendError(c, err, "Failed to delete user")
	}

	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Message: "User deleted successfully",
		Status:  fiber.StatusOK,
		Data:    nil,
	})
}
