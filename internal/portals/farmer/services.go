package farmer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/prediction"
	"gorm.io/gorm"
)

var (
	ErrCaseIncomplete  = errors.New("animalType and symptoms are required")
	ErrInvalidAnimal   = errors.New("age and weight must not be negative")
	ErrCaseNotFound    = errors.New("case not found")
	ErrNotOwner        = errors.New("case does not belong to you")
	ErrNoDoctor        = errors.New("no doctor assigned to this case yet")
	ErrWrongRecipient  = errors.New("recipient must be the assigned doctor")
	ErrNameRequired    = errors.New("name is required")
	ErrProfileNotFound = errors.New("user not found")
)

const nearbyDoctorLimit = 5

// --- Case Service ---

type CaseService struct {
	db        *gorm.DB
	predictor prediction.Predictor
}

func NewCaseService(db *gorm.DB, predictor prediction.Predictor) *CaseService {
	return &CaseService{db: db, predictor: predictor}
}

// Submit stores the animal and its pending case together and attaches a
// placeholder prediction.
func (s *CaseService) Submit(userID uint, in CaseInput) (*models.Case, prediction.Prediction, error) {
	animalType := strings.TrimSpace(in.AnimalType)
	symptoms := strings.TrimSpace(in.Symptoms)
	if animalType == "" || symptoms == "" {
		return nil, prediction.Prediction{}, ErrCaseIncomplete
	}
	if in.Age < 0 || in.Weight < 0 {
		return nil, prediction.Prediction{}, ErrInvalidAnimal
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = models.DefaultCaseImage
	}
	guess := s.predictor.Predict(symptoms)

	c := models.Case{
		UserID:       userID,
		Symptoms:     symptoms,
		ImageURL:     imageURL,
		AIPrediction: guess.JSON(),
		Status:       models.CaseStatusPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		animal := models.Animal{
			AnimalType: animalType,
			Age:        int(in.Age),
			Weight:     float64(in.Weight),
			Location:   strings.TrimSpace(in.Location),
		}
		if err := tx.Create(&animal).Error; err != nil {
			return fmt.Errorf("failed to create animal: %w", err)
		}
		c.AnimalID = animal.ID
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to create case: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, prediction.Prediction{}, err
	}
	return &c, guess, nil
}

// Dashboard counts the farmer's cases. NearbyDoctors is left for the caller.
func (s *CaseService) Dashboard(userID uint) (*Dashboard, error) {
	var d Dashboard
	base := func() *gorm.DB {
		return s.db.Model(&models.Case{}).Where("user_id = ?", userID)
	}
	if err := base().Count(&d.TotalCases).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.CaseStatusPending).Count(&d.PendingCases).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.CaseStatusResolved).Count(&d.ResolvedCases).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns the farmer's cases, newest first.
func (s *CaseService) List(userID uint) ([]CaseRow, error) {
	rows := []CaseRow{}
	err := s.db.Table("cases AS c").
		Select("c.id, c.symptoms, c.image_url, c.status, c.disease_name, c.diagnosis, c.prescribed_medicine, c.notes, c.ai_prediction, c.created_at, " +
			"a.animal_type, a.location, d.user_id AS doctor_user_id, du.name AS doctor_name").
		Joins("LEFT JOIN animals a ON a.id = c.animal_id").
		Joins("LEFT JOIN doctors d ON d.id = c.assigned_doctor_id").
		Joins("LEFT JOIN users du ON du.id = d.user_id").
		Where("c.user_id = ?", userID).
		Order("c.created_at DESC, c.id DESC").
		Scan(&rows).Error
	return rows, err
}

// DoctorContact returns the user id of the doctor assigned to the caller's
// case. Only the case owner may ask.
func (s *CaseService) DoctorContact(userID, caseID uint) (uint, error) {
	c, err := s.owned(userID, caseID)
	if err != nil {
		return 0, err
	}
	if c.AssignedDoctorID == nil {
		return 0, ErrNoDoctor
	}

	var doctor models.Doctor
	if err := s.db.Select("id", "user_id").First(&doctor, *c.AssignedDoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoDoctor
		}
		return 0, err
	}
	return doctor.UserID, nil
}

// CheckOwner reports whether userID owns caseID.
func (s *CaseService) CheckOwner(userID, caseID uint) error {
	_, err := s.owned(userID, caseID)
	return err
}

func (s *CaseService) owned(userID, caseID uint) (*models.Case, error) {
	var c models.Case
	if err := s.db.Select("id", "user_id", "assigned_doctor_id").First(&c, caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrNotOwner
	}
	return &c, nil
}

// Visits lists visit requests doctors have made on the farmer's cases.
func (s *CaseService) Visits(userID uint) ([]VisitRow, error) {
	rows := []VisitRow{}
	err := s.db.Table("visit_requests AS v").
		Select("v.id, v.case_id, v.recommended_date, v.recommended_time, v.location, v.created_at, " +
			"u.name AS doctor_name, u.phone AS doctor_phone").
		Joins("JOIN cases c ON c.id = v.case_id").
		Joins("JOIN doctors d ON d.id = v.doctor_id").
		Joins("JOIN users u ON u.id = d.user_id").
		Where("c.user_id = ?", userID).
		Order("v.created_at DESC, v.id DESC").
		Scan(&rows).Error
	return rows, err
}

// --- Doctor Service ---

type DoctorService struct {
	db *gorm.DB
}

func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{db: db}
}

// Approved lists approved doctors by rating. An empty specialization
// matches all; limit <= 0 means no limit.
func (s *DoctorService) Approved(specialization string, limit int) ([]DoctorRow, error) {
	q := s.db.Table("doctors AS d").
		Select("d.id, d.user_id, u.name, u.phone, d.specialization, d.rating, d.cases_handled, d.created_at").
		Joins("JOIN users u ON u.id = d.user_id").
		Where("d.status = ? AND u.status = ?", models.DoctorStatusApproved, models.UserStatusActive)
	if spec := strings.TrimSpace(specialization); spec != "" {
		q = q.Where("LOWER(d.specialization) LIKE ?"+database.LikeEscape, database.ContainsFold(spec))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	rows := []DoctorRow{}
	err := q.Order("d.rating DESC, d.cases_handled DESC, d.id ASC").Scan(&rows).Error
	return rows, err
}

// --- Profile Service ---

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uint) (*Profile, error) {
	var p Profile
	err := s.db.Model(&models.User{}).
		Select("id, name, email, phone, status, created_at").
		Where("id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) Update(userID uint, name, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"name": name, "phone": strings.TrimSpace(phone)}).Error
}
