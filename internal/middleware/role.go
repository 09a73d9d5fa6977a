package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole admits only tokens whose role claim equals role and whose
// account still exists and is active. Run it after JWTProtected.
func RequireRole(db *gorm.DB, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		}

		if GetRole(c) != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "Access denied: " + role + " role required",
			})
		}

		var user models.User
		if err := db.Select("id", "role", "status").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Account not found"})
			}
			slog.Error("role check failed", "action", "require_role", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
		}
		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "Access denied: " + role + " role required",
			})
		}
		if user.Status == models.UserStatusSuspended {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Account suspended"})
		}

		return c.Next()
	}
}
