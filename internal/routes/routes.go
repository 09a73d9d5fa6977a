package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	portalList []portals.Portal,
) {
	// General rate limit per IP
	if cfg.RateLimitPerMin > 0 {
		app.Use(newLimiter(cfg.RateLimitPerMin))
	}

	app.Get("/health", healthHandler.Check)

	// Auth is public with a stricter per-IP limit
	auth := app.Group("/auth")
	if cfg.AuthRateLimitPerMin > 0 {
		auth.Use(newLimiter(cfg.AuthRateLimitPerMin))
	}
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Each portal sits behind JWT verification and its role check
	for _, p := range portalList {
		group := app.Group("/"+p.Role(), middleware.JWTProtected(cfg), middleware.RequireRole(db, p.Role()))
		p.RegisterRoutes(group, db, cfg)
	}
}

func newLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Error: "Too many requests"})
		},
	})
}
