package admin

import "time"

// Disease is a catalog entry curated by admins. Cases reference diseases by
// free-text name only.
type Disease struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Treatment   string    `gorm:"type:text" json:"treatment"`
	CreatedAt   time.Time `json:"created_at"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type DiseaseCount struct {
	DiseaseName string `json:"disease_name"`
	Count       int64  `json:"count"`
}

type Stats struct {
	TotalUsers    int64          `json:"totalUsers"`
	TotalDoctors  int64          `json:"totalDoctors"`
	TotalCases    int64          `json:"totalCases"`
	ActiveCases   int64          `json:"activeCases"`
	ResolvedCases int64          `json:"resolvedCases"`
	CasesByMonth  []MonthCount   `json:"casesByMonth"`
	DiseaseStats  []DiseaseCount `json:"diseaseStats"`
}

type DoctorRow struct {
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
	CreatedAt      time.Time  `json:"created_at"`
}

type UserRow struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationCount is the number of cases in one status at one animal location.
type LocationCount struct {
	Location string `json:"location"`
	Status   string `json:"status"`
	Count    int64  `json:"count"`
}
