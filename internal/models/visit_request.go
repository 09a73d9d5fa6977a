package models

import "time"

// VisitRequest is a doctor's recommendation for an on-site examination.
type VisitRequest struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CaseID          uint      `gorm:"not null;index" json:"case_id"`
	DoctorID        uint      `gorm:"not null;index" json:"doctor_id"`
	RecommendedDate string    `gorm:"size:20;not null" json:"recommended_date"`
	RecommendedTime string    `gorm:"size:20" json:"recommended_time"`
	Location        string    `gorm:"size:255" json:"location"`
	CreatedAt       time.Time `json:"created_at"`
	Case            Case      `gorm:"foreignKey:CaseID" json:"-"`
	Doctor          Doctor    `gorm:"foreignKey:DoctorID" json:"-"`
}
