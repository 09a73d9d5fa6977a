// Package portals defines the contract each role-gated API surface implements.
package portals

import (
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Portal is one role's API. The router mounts it under "/<Role()>" behind
// JWT verification and a role check.
type Portal interface {
	// ID names the portal in logs.
	ID() string

	// Role is the token role allowed through, and the mount prefix.
	Role() string

	// Models returns GORM model pointers the portal owns, for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the portal's routes on its already-guarded group.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// Migrate runs AutoMigrate for every portal's own models.
func Migrate(db *gorm.DB, list []Portal, migrate func(*gorm.DB, []interface{}) error) error {
	for _, p := range list {
		if err := migrate(db, p.Models()); err != nil {
			return &MigrationError{Portal: p.ID(), Err: err}
		}
	}
	return nil
}

// MigrationError names the portal whose models failed to migrate.
type MigrationError struct {
	Portal string
	Err    error
}

func (e *MigrationError) Error() string { return "migrate " + e.Portal + ": " + e.Err.Error() }
func (e *MigrationError) Unwrap() error { return e.Err }
