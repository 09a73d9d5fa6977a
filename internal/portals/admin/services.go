package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminImmutable     = errors.New("admin accounts cannot be suspended")
	ErrDiseaseNameMissing = errors.New("disease name is required")
	ErrDiseaseExists      = errors.New("disease already exists")
)

// --- Stats Service ---

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) Dashboard() (*Stats, error) {
	var st Stats

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&st.TotalUsers, s.db.Model(&models.User{}).Where("role = ?", models.RoleUser)},
		{&st.TotalDoctors, s.db.Model(&models.Doctor{}).Where("status = ?", models.DoctorStatusApproved)},
		{&st.TotalCases, s.db.Model(&models.Case{})},
		{&st.ActiveCases, s.db.Model(&models.Case{}).Where("status = ?", models.CaseStatusPending)},
		{&st.ResolvedCases, s.db.Model(&models.Case{}).Where("status = ?", models.CaseStatusResolved)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	month := database.MonthExpr(s.db, "created_at")
	st.CasesByMonth = []MonthCount{}
	err := s.db.Model(&models.Case{}).
		Select(month + " AS month, COUNT(*) AS count").
		Group(month).
		Order("month DESC").
		Limit(12).
		Scan(&st.CasesByMonth).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group cases by month: %w", err)
	}

	st.DiseaseStats = []DiseaseCount{}
	err = s.db.Model(&models.Case{}).
		Select("disease_name, COUNT(*) AS count").
		Where("disease_name IS NOT NULL AND disease_name <> ''").
		Group("disease_name").
		Order("count DESC, disease_name ASC").
		Limit(10).
		Scan(&st.DiseaseStats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group cases by disease: %w", err)
	}

	return &st, nil
}

// CaseLocations counts cases per animal location and status.
func (s *StatsService) CaseLocations() ([]LocationCount, error) {
	rows := []LocationCount{}
	err := s.db.Table("cases AS c").
		Select("a.location AS location, c.status AS status, COUNT(*) AS count").
		Joins("JOIN animals a ON a.id = c.animal_id").
		Group("a.location, c.status").
		Order("count DESC, location ASC").
		Scan(&rows).Error
	return rows, err
}

// --- Account Service ---

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

func (s *AccountService) Doctors() ([]DoctorRow, error) {
	rows := []DoctorRow{}
	err := s.db.Table("doctors AS d").
		Select("d.id, d.user_id, u.name, u.email, u.phone, d.specialization, d.license_number, d.status, d.rating, d.cases_handled, d.approval_date, d.created_at").
		Joins("JOIN users u ON u.id = d.user_id").
		Order("d.created_at DESC, d.id DESC").
		Scan(&rows).Error
	return rows, err
}

// ApproveDoctor lets the doctor log in and stamps the approval date.
func (s *AccountService) ApproveDoctor(doctorID uint) error {
	return s.setDoctorStatus(doctorID, map[string]interface{}{
		"status":        models.DoctorStatusApproved,
		"approval_date": time.Now(),
	})
}

func (s *AccountService) SuspendDoctor(doctorID uint) error {
	return s.setDoctorStatus(doctorID, map[string]interface{}{
		"status": models.DoctorStatusSuspended,
	})
}

func (s *AccountService) setDoctorStatus(doctorID uint, updates map[string]interface{}) error {
	var doctor models.Doctor
	if err := s.db.Select("id").First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}
	return s.db.Model(&doctor).Updates(updates).Error
}

// Users lists farmer accounts, newest first.
func (s *AccountService) Users() ([]UserRow, error) {
	rows := []UserRow{}
	err := s.db.Model(&models.User{}).
		Select("id, name, email, phone, status, created_at").
		Where("role = ?", models.RoleUser).
		Order("created_at DESC, id DESC").
		Scan(&rows).Error
	return rows, err
}

// SetUserStatus suspends or reactivates an account. Rows are never deleted.
func (s *AccountService) SetUserStatus(userID uint, status string) error {
	var user models.User
	if err := s.db.Select("id", "role").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role == models.RoleAdmin {
		return ErrAdminImmutable
	}
	return s.db.Model(&user).Update("status", status).Error
}

// --- Disease Service ---

type DiseaseService struct {
	db *gorm.DB
}

func NewDiseaseService(db *gorm.DB) *DiseaseService {
	return &DiseaseService{db: db}
}

func (s *DiseaseService) List() ([]Disease, error) {
	diseases := []Disease{}
	err := s.db.Order("name ASC").Find(&diseases).Error
	return diseases, err
}

func (s *DiseaseService) Add(name, description, treatment string) (*Disease, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrDiseaseNameMissing
	}

	var count int64
	if err := s.db.Model(&Disease{}).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check disease: %w", err)
	}
	if count > 0 {
		return nil, ErrDiseaseExists
	}

	d := Disease{
		Name:        name,
		Description: strings.TrimSpace(description),
		Treatment:   strings.TrimSpace(treatment),
	}
	if err := s.db.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("failed to create disease: %w", err)
	}
	return &d, nil
}
