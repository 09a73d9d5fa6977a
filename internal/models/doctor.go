package models

import "time"

const (
	DoctorStatusPending   = "pending"
	DoctorStatusApproved  = "approved"
	DoctorStatusSuspended = "suspended"
)

// Doctor is the veterinarian profile attached 1:1 to a doctor account.
// Login is refused until an admin approves it.
type Doctor struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Specialization string     `gorm:"size:255" json:"specialization"`
	LicenseNumber  string     `gorm:"size:100" json:"license_number"`
	Status         string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Rating         float64    `gorm:"default:0" json:"rating"`
	CasesHandled   int        `gorm:"default:0" json:"cases_handled"`
	ApprovalDate   *time.Time `json:"approval_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	User           User       `gorm:"foreignKey:UserID" json:"-"`
}
