package doctor

import (
	"time"

	"gorm.io/datatypes"
)

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type Dashboard struct {
	AssignedCases      int64        `json:"assignedCases"`
	ResolvedCases      int64        `json:"resolvedCases"`
	PendingCases       int64        `json:"pendingCases"`
	InProgressCases    int64        `json:"inProgressCases"`
	CureRate           int          `json:"cureRate"`
	MonthlyPerformance []MonthCount `json:"monthlyPerformance"`
}

// CaseRequestRow is an open case as shown to doctors choosing what to take.
type CaseRequestRow struct {
	ID           uint           `json:"id"`
	UserID       uint           `json:"user_id"`
	AnimalID     uint           `json:"animal_id"`
	Symptoms     string         `json:"symptoms"`
	ImageURL     string         `json:"image_url"`
	AIPrediction datatypes.JSON `json:"ai_prediction"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UserName     string         `json:"user_name"`
	Phone        string         `json:"phone"`
	AnimalType   string         `json:"animal_type"`
	Age          int            `json:"age"`
	Weight       float64        `json:"weight"`
	Location     string         `json:"location"`
}

// HistoryRow is a case the doctor has been assigned.
type HistoryRow struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"user_id"`
	Symptoms           string    `json:"symptoms"`
	ImageURL           string    `json:"image_url"`
	DiseaseName        *string   `json:"disease_name"`
	Diagnosis          string    `json:"diagnosis"`
	PrescribedMedicine string    `json:"prescribed_medicine"`
	Notes              string    `json:"notes"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	UserName           string    `json:"user_name"`
	AnimalType         string    `json:"animal_type"`
	Location           string    `json:"location"`
}

type VisitRow struct {
	ID              uint      `json:"id"`
	CaseID          uint      `json:"case_id"`
	RecommendedDate string    `json:"recommended_date"`
	RecommendedTime string    `json:"recommended_time"`
	Location        string    `json:"location"`
	CreatedAt       time.Time `json:"created_at"`
	UserName        string    `json:"user_name"`
	Phone           string    `json:"phone"`
	AnimalType      string    `json:"animal_type"`
}

type Profile struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Specialization string     `json:"specialization"`
	LicenseNumber  string     `json:"license_number"`
	Status         string     `json:"status"`
	Rating         float64    `json:"rating"`
	CasesHandled   int        `json:"cases_handled"`
	ApprovalDate   *time.Time `json:"approval_date"`
}

// Diagnosis is the doctor's finding for a case. Empty fields are left as is.
type Diagnosis struct {
	Diagnosis   string `json:"diagnosis"`
	Medication  string `json:"medication"`
	Notes       string `json:"notes"`
	DiseaseName string `json:"diseaseName"`
}

type VisitInput struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

type ProfileInput struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}
