package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const secret = "middleware-secret"

func sign(t *testing.T, id uint, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": id, "email": "x@x.com", "role": role, "exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestRequireRole(t *testing.T) {
	db := testsupport.NewDB(t)
	cfg := &config.Config{JWTSecret: secret}

	farmer := testsupport.CreateUser(t, db, "Farmer", "farmer@x.com", models.RoleUser)
	suspended := testsupport.CreateUser(t, db, "Gone", "gone@x.com", models.RoleUser)
	db.Model(suspended).Update("status", models.UserStatusSuspended)

	app := fiber.New()
	app.Get("/user/ping", JWTProtected(cfg), RequireRole(db, models.RoleUser), func(c *fiber.Ctx) error {
		id, err := GetUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id, "role": GetRole(c)})
	})

	future := time.Now().Add(time.Hour)
	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"garbage token", "not-a-jwt", fiber.StatusUnauthorized},
		{"expired token", sign(t, farmer.ID, models.RoleUser, time.Now().Add(-time.Hour)), fiber.StatusUnauthorized},
		{"wrong role", sign(t, farmer.ID, models.RoleDoctor, future), fiber.StatusForbidden},
		{"deleted account", sign(t, 9999, models.RoleUser, future), fiber.StatusForbidden},
		{"suspended account", sign(t, suspended.ID, models.RoleUser, future), fiber.StatusForbidden},
		{"active farmer", sign(t, farmer.ID, models.RoleUser, future), fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/user/ping", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestGetUserIDWithoutToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if _, err := GetUserID(c); err == nil {
			t.Error("expected an error without a token")
		}
		if role := GetRole(c); role != "" {
			t.Errorf("role = %q, want empty", role)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	if _, err := app.Test(httptest.NewRequest("GET", "/", nil)); err != nil {
		t.Fatalf("request: %v", err)
	}
}
