package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
	"github.com/golang-jwt/jwt/v5"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "A@X.com", Password: "p", Role: "user"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "a@x.com" || resp.User.Role != models.RoleUser || resp.User.Name != "a" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["role"] != models.RoleUser || claims["email"] != "a@x.com" {
		t.Errorf("claims = %v", claims)
	}
	if id, ok := claims["id"].(float64); !ok || uint(id) != resp.User.ID {
		t.Errorf("id claim = %v, want %d", claims["id"], resp.User.ID)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token has no exp claim")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewAuthService(db, testConfig())
	testsupport.CreateUser(t, db, "Existing", "a@x.com", models.RoleUser)

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "p"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("users = %d, want 1", count)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewAuthService(db, testConfig())

	tests := []struct {
		name string
		req  dto.RegisterRequest
		want error
	}{
		{"missing email", dto.RegisterRequest{Password: "p"}, ErrMissingFields},
		{"missing password", dto.RegisterRequest{Email: "b@x.com"}, ErrMissingFields},
		{"admin self-register", dto.RegisterRequest{Email: "c@x.com", Password: "p", Role: "admin"}, ErrInvalidRole},
		{"unknown role", dto.RegisterRequest{Email: "d@x.com", Password: "p", Role: "vet"}, ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := svc.Register(&req); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterDoctorCreatesPendingProfile(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Name: "Dr. Vet", Email: "vet@x.com", Password: "p", Role: "doctor",
		Specialization: "Bovine Medicine", LicenseNumber: "LIC-9",
	})
	if err != nil {
		t.Fatalf("register doctor: %v", err)
	}

	var doctor models.Doctor
	if err := db.Where("user_id = ?", resp.User.ID).First(&doctor).Error; err != nil {
		t.Fatalf("doctor profile missing: %v", err)
	}
	if doctor.Status != models.DoctorStatusPending || doctor.Specialization != "Bovine Medicine" || doctor.LicenseNumber != "LIC-9" {
		t.Fatalf("unexpected profile %+v", doctor)
	}
}

func TestLogin(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewAuthService(db, testConfig())

	testsupport.CreateUser(t, db, "Farmer", "farmer@x.com", models.RoleUser)
	testsupport.CreateDoctor(t, db, "Pending", "pending@x.com", models.DoctorStatusPending)
	testsupport.CreateDoctor(t, db, "Approved", "approved@x.com", models.DoctorStatusApproved)
	testsupport.CreateDoctor(t, db, "Suspended Doc", "suspdoc@x.com", models.DoctorStatusSuspended)
	suspended := testsupport.CreateUser(t, db, "Gone", "gone@x.com", models.RoleUser)
	db.Model(suspended).Update("status", models.UserStatusSuspended)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"valid user", "farmer@x.com", testsupport.Password, nil},
		{"email is case-insensitive", "FARMER@x.com", testsupport.Password, nil},
		{"wrong password", "farmer@x.com", "nope", ErrInvalidCredentials},
		{"unknown email", "ghost@x.com", testsupport.Password, ErrInvalidCredentials},
		{"pending doctor", "pending@x.com", testsupport.Password, ErrDoctorNotApproved},
		{"suspended doctor", "suspdoc@x.com", testsupport.Password, ErrDoctorNotApproved},
		{"approved doctor", "approved@x.com", testsupport.Password, nil},
		{"suspended user", "gone@x.com", testsupport.Password, ErrAccountSuspended},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(&dto.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want == nil && resp.Token == "" {
				t.Fatal("expected a token")
			}
		})
	}
}
