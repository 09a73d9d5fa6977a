package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CaseStatusPending    = "pending"
	CaseStatusInProgress = "in_progress"
	CaseStatusResolved   = "resolved"
)

// DefaultCaseImage is stored when a case is submitted without an image.
const DefaultCaseImage = "https://via.placeholder.com/400"

// Case is a single animal-health incident. Status only moves forward:
// pending -> in_progress (accept) -> resolved (resolve).
type Case struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	AnimalID           uint           `gorm:"not null;index" json:"animal_id"`
	AssignedDoctorID   *uint          `gorm:"index" json:"assigned_doctor_id"`
	Symptoms           string         `gorm:"type:text;not null" json:"symptoms"`
	ImageURL           string         `gorm:"size:500" json:"image_url"`
	DiseaseName        *string        `gorm:"size:255;index" json:"disease_name"`
	Diagnosis          string         `gorm:"type:text" json:"diagnosis"`
	PrescribedMedicine string         `gorm:"type:text" json:"prescribed_medicine"`
	Notes              string         `gorm:"type:text" json:"notes"`
	AIPrediction       datatypes.JSON `json:"ai_prediction"`
	Status             string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	User               User           `gorm:"foreignKey:UserID" json:"-"`
	Animal             Animal         `gorm:"foreignKey:AnimalID" json:"-"`
	AssignedDoctor     *Doctor        `gorm:"foreignKey:AssignedDoctorID" json:"-"`
}
