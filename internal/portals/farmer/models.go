package farmer

import (
	"bytes"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Number accepts a JSON number or a numeric string; "" and null are zero.
// Submission forms post age and weight as text.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

type CaseInput struct {
	AnimalType string `json:"animalType"`
	Symptoms   string `json:"symptoms"`
	Age        Number `json:"age"`
	Weight     Number `json:"weight"`
	Location   string `json:"location"`
	ImageURL   string `json:"imageUrl"`
}

type DoctorRow struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Specialization string    `json:"specialization"`
	Rating         float64   `json:"rating"`
	CasesHandled   int       `json:"cases_handled"`
	CreatedAt      time.Time `json:"created_at"`
}

type Dashboard struct {
	TotalCases    int64       `json:"totalCases"`
	PendingCases  int64       `json:"pendingCases"`
	ResolvedCases int64       `json:"resolvedCases"`
	NearbyDoctors []DoctorRow `json:"nearbyDoctors"`
}

// CaseRow is one of the farmer's own cases with its animal and doctor.
type CaseRow struct {
	ID                 uint           `json:"id"`
	Symptoms           string         `json:"symptoms"`
	ImageURL           string         `json:"image_url"`
	Status             string         `json:"status"`
	DiseaseName        *string        `json:"disease_name"`
	Diagnosis          string         `json:"diagnosis"`
	PrescribedMedicine string         `json:"prescribed_medicine"`
	Notes              string         `json:"notes"`
	AIPrediction       datatypes.JSON `json:"ai_prediction"`
	CreatedAt          time.Time      `json:"created_at"`
	AnimalType         string         `json:"animal_type"`
	Location           string         `json:"location"`
	DoctorUserID       *uint          `json:"doctor_user_id"`
	DoctorName         *string        `json:"doctor_name"`
}

type VisitRow struct {
	ID              uint      `json:"id"`
	CaseID          uint      `json:"case_id"`
	RecommendedDate string    `json:"recommended_date"`
	RecommendedTime string    `json:"recommended_time"`
	Location        string    `json:"location"`
	CreatedAt       time.Time `json:"created_at"`
	DoctorName      string    `json:"doctor_name"`
	DoctorPhone     string    `json:"doctor_phone"`
}

type Profile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
