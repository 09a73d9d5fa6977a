// Package testsupport provides an in-memory database and fixtures for tests.
package testsupport

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture account.
const Password = "password123"

// NewDB opens a private in-memory SQLite database with the shared schema
// migrated. The pool is capped at one connection so the memory database
// survives for the whole test.
func NewDB(t *testing.T, extra ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.MigrateShared(db); err != nil {
		t.Fatalf("migrate shared: %v", err)
	}
	if err := database.MigrateModels(db, extra); err != nil {
		t.Fatalf("migrate extra: %v", err)
	}
	return db
}

// CreateUser inserts an active account with the fixture password.
func CreateUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Status:   models.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// CreateDoctor inserts a doctor account plus its profile in the given status.
func CreateDoctor(t *testing.T, db *gorm.DB, name, email, status string) (*models.User, *models.Doctor) {
	t.Helper()

	user := CreateUser(t, db, name, email, models.RoleDoctor)
	doctor := &models.Doctor{
		UserID:         user.ID,
		Specialization: "General Veterinary Medicine",
		LicenseNumber:  "LIC-" + email,
		Status:         status,
	}
	if status == models.DoctorStatusApproved {
		now := time.Now()
		doctor.ApprovalDate = &now
	}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("create doctor %s: %v", email, err)
	}
	return user, doctor
}

// CreateCase inserts an animal and a pending case owned by ownerID.
func CreateCase(t *testing.T, db *gorm.DB, ownerID uint, animalType, location, symptoms string) *models.Case {
	t.Helper()

	animal := &models.Animal{AnimalType: animalType, Age: 3, Weight: 200, Location: location}
	if err := db.Create(animal).Error; err != nil {
		t.Fatalf("create animal: %v", err)
	}
	c := &models.Case{
		UserID:   ownerID,
		AnimalID: animal.ID,
		Symptoms: symptoms,
		ImageURL: models.DefaultCaseImage,
		Status:   models.CaseStatusPending,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create case: %v", err)
	}
	return c
}

// Reload fetches the current row for c.
func Reload(t *testing.T, db *gorm.DB, c *models.Case) *models.Case {
	t.Helper()

	var fresh models.Case
	if err := db.First(&fresh, c.ID).Error; err != nil {
		t.Fatalf("reload case %d: %v", c.ID, err)
	}
	return &fresh
}
