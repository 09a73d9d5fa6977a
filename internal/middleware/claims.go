package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var errNoClaims = errors.New("invalid token in context")

func claimsOf(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errNoClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// GetUserID returns the numeric id claim. JSON numbers decode as float64.
func GetUserID(c *fiber.Ctx) (uint, error) {
	claims, err := claimsOf(c)
	if err != nil {
		return 0, err
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, errors.New("missing id claim")
	}
	return uint(id), nil
}

// GetRole returns the role claim, or "" when absent.
func GetRole(c *fiber.Ctx) string {
	claims, err := claimsOf(c)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
