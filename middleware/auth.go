package middleware

import (
	"strings"

	userModel "zap-shift/models/user"
	"zap-shift/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// IsAuthenticated checks for a valid identity provider token in the
// Authorization header, with the access cookie as fallback. On success the
// verified claims and the email claim are attached to the request locals.
func IsAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Authorization token missing",
				})
			}
		}

		claims, err := VerifyJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals("user", claims)
		c.Locals("email", email)

		return c.Next()
	}
}

// ClaimEmail returns the verified email attached by IsAuthenticated.
func ClaimEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals("email").(string); ok {
		return email
	}
	if claims, ok := c.Locals("user").(jwt.MapClaims); ok {
		if email, ok := claims["email"].(string); ok {
			return email
		}
	}
	return ""
}

// roleOf looks the caller's role up in the users table on every request, so a
// role change takes effect on the very next call. An email with no account
// resolves to the default role.
func roleOf(db *gorm.DB, email string) userModel.Role {
	var u userModel.User
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return userModel.RoleUser
	}
	return u.Role
}

// RequireAdmin rejects callers whose current role is not admin.
func RequireAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if roleOf(db, ClaimEmail(c)) != userModel.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error":  "Forbidden access",
			})
		}
		return c.Next()
	}
}

// RequireRider guards rider-only routes.
// TODO: this compares against the admin role, same as RequireAdmin, so rider
// accounts cannot reach their own routes. Needs a product decision on whether
// riders, admins or both should pass before changing the comparison.
func RequireRider(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if roleOf(db, ClaimEmail(c)) != userModel.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error":  "Forbidden access",
			})
		}
		return c.Next()
	}
}

// RequireOwnEmail rejects requests whose email query parameter does not match
// the token's email claim exactly.
func RequireOwnEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := c.Query("email")
		if requested != "" && requested != ClaimEmail(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error":  "Forbidden access",
			})
		}
		return c.Next()
	}
}
