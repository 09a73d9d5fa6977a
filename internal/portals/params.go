package portals

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var ErrInvalidID = errors.New("invalid id")

// ParamID parses a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}
