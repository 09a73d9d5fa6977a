// Package seed inserts demo accounts and a starter disease catalog.
package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals/admin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is used for every demo account unless overridden.
const DefaultPassword = "password123"

type demoUser struct {
	Name  string
	Email string
	Role  string
	Phone string
}

var demoUsers = []demoUser{
	{Name: "Admin User", Email: "admin@pashudrishti.com", Role: models.RoleAdmin, Phone: "9999999999"},
	{Name: "Dr. Rajesh Kumar", Email: "doctor@pashudrishti.com", Role: models.RoleDoctor, Phone: "9988888888"},
	{Name: "Farmer Singh", Email: "user@pashudrishti.com", Role: models.RoleUser, Phone: "9977777777"},
}

var demoDiseases = []admin.Disease{
	{Name: "Foot and Mouth Disease", Description: "Viral disease causing fever and blisters in the mouth and on the feet.", Treatment: "Isolate, clean lesions with antiseptic, supportive care. Vaccinate the herd."},
	{Name: "Mastitis", Description: "Inflammation of the udder, usually bacterial.", Treatment: "Strip affected quarters, intramammary antibiotics, improve milking hygiene."},
	{Name: "Brucellosis", Description: "Bacterial infection causing abortion and infertility. Zoonotic.", Treatment: "No reliable cure. Cull positives, vaccinate young stock, wear protective gear."},
	{Name: "Anthrax", Description: "Acute bacterial disease with sudden death. Zoonotic.", Treatment: "Report immediately. Penicillin in early cases, do not open carcasses."},
	{Name: "Bovine Tuberculosis", Description: "Chronic bacterial disease with weight loss and cough.", Treatment: "Test and remove reactors, quarantine the herd."},
}

// Result counts what a run created. Existing rows are skipped.
type Result struct {
	Users    int
	Diseases int
}

// Run inserts the demo data. It can be run repeatedly: users are matched by
// email and diseases by name.
func Run(db *gorm.DB, password string) (*Result, error) {
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var res Result
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, u := range demoUsers {
			created, err := seedUser(tx, u, string(hash))
			if err != nil {
				return err
			}
			if created {
				res.Users++
			}
		}
		for _, d := range demoDiseases {
			var count int64
			if err := tx.Model(&admin.Disease{}).Where("name = ?", d.Name).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to look up disease %s: %w", d.Name, err)
			}
			if count > 0 {
				continue
			}
			d := d
			if err := tx.Create(&d).Error; err != nil {
				return fmt.Errorf("failed to seed disease %s: %w", d.Name, err)
			}
			res.Diseases++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("seed completed", "users_created", res.Users, "diseases_created", res.Diseases)
	return &res, nil
}

func seedUser(tx *gorm.DB, u demoUser, hash string) (bool, error) {
	var existing models.User
	err := tx.Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		slog.Info("seed user exists, skipping", "email", u.Email)
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up %s: %w", u.Email, err)
	}

	user := models.User{
		Name:     u.Name,
		Email:    u.Email,
		Password: hash,
		Role:     u.Role,
		Phone:    u.Phone,
		Status:   models.UserStatusActive,
	}
	if err := tx.Create(&user).Error; err != nil {
		return false, fmt.Errorf("failed to create %s: %w", u.Email, err)
	}

	if u.Role == models.RoleDoctor {
		now := time.Now()
		doctor := models.Doctor{
			UserID:         user.ID,
			Specialization: "General Veterinary Medicine",
			LicenseNumber:  "LIC-2024-001",
			Status:         models.DoctorStatusApproved,
			Rating:         4.5,
			ApprovalDate:   &now,
		}
		if err := tx.Create(&doctor).Error; err != nil {
			return false, fmt.Errorf("failed to create doctor profile: %w", err)
		}
	}
	return true, nil
}
