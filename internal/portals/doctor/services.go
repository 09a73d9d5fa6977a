package doctor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound   = errors.New("doctor profile not found")
	ErrDoctorSuspended   = errors.New("doctor account suspended")
	ErrDoctorNotApproved = errors.New("doctor account not approved yet")
	ErrCaseNotFound      = errors.New("case not found")
	ErrCaseTaken         = errors.New("case is no longer available")
	ErrNotAssigned       = errors.New("case is not assigned to you")
	ErrCaseResolved      = errors.New("case is already resolved")
	ErrCaseNotInProgress = errors.New("only in-progress cases can be resolved")
	ErrEmptyDiagnosis    = errors.New("diagnosis, medication, notes or diseaseName is required")
	ErrVisitDate         = errors.New("visit date is required")
	ErrNameRequired      = errors.New("name is required")
	ErrWrongRecipient    = errors.New("recipient must be the case owner")
)

// --- Profile Service ---

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Current returns the caller's doctor profile. Only an approved profile may
// act; a token issued at registration does not skip approval.
func (s *ProfileService) Current(userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load doctor profile: %w", err)
	}
	switch doctor.Status {
	case models.DoctorStatusApproved:
		return &doctor, nil
	case models.DoctorStatusSuspended:
		return nil, ErrDoctorSuspended
	default:
		return nil, ErrDoctorNotApproved
	}
}

func (s *ProfileService) Get(doctorID uint) (*Profile, error) {
	var p Profile
	err := s.db.Table("doctors AS d").
		Select("d.id, d.user_id, u.name, u.email, u.phone, d.specialization, d.license_number, d.status, d.rating, d.cases_handled, d.approval_date").
		Joins("JOIN users u ON u.id = d.user_id").
		Where("d.id = ?", doctorID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) Update(doctor *models.Doctor, in ProfileInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrNameRequired
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("id = ?", doctor.UserID).
			Updates(map[string]interface{}{"name": name, "phone": strings.TrimSpace(in.Phone)}).Error
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if spec := strings.TrimSpace(in.Specialization); spec != "" {
			if err := tx.Model(doctor).Update("specialization", spec).Error; err != nil {
				return fmt.Errorf("failed to update specialization: %w", err)
			}
		}
		return nil
	})
}

// --- Case Service ---

type CaseService struct {
	db *gorm.DB
}

func NewCaseService(db *gorm.DB) *CaseService {
	return &CaseService{db: db}
}

func (s *CaseService) Dashboard(doctorID uint) (*Dashboard, error) {
	var d Dashboard
	base := func() *gorm.DB {
		return s.db.Model(&models.Case{}).Where("assigned_doctor_id = ?", doctorID)
	}

	if err := base().Count(&d.AssignedCases).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.CaseStatusResolved).Count(&d.ResolvedCases).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.CaseStatusPending).Count(&d.PendingCases).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.CaseStatusInProgress).Count(&d.InProgressCases).Error; err != nil {
		return nil, err
	}
	if d.AssignedCases > 0 {
		d.CureRate = int(math.Round(float64(d.ResolvedCases) / float64(d.AssignedCases) * 100))
	}

	month := database.MonthExpr(s.db, "created_at")
	d.MonthlyPerformance = []MonthCount{}
	err := base().
		Select(month+" AS month, COUNT(*) AS count").
		Where("status = ?", models.CaseStatusResolved).
		Group(month).
		Order("month DESC").
		Limit(12).
		Scan(&d.MonthlyPerformance).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group resolved cases: %w", err)
	}
	return &d, nil
}

// Requests lists unassigned pending cases, newest first.
func (s *CaseService) Requests() ([]CaseRequestRow, error) {
	rows := []CaseRequestRow{}
	err := s.db.Table("cases AS c").
		Select("c.id, c.user_id, c.animal_id, c.symptoms, c.image_url, c.ai_prediction, c.status, c.created_at, " +
			"u.name AS user_name, u.phone, a.animal_type, a.age, a.weight, a.location").
		Joins("JOIN users u ON u.id = c.user_id").
		Joins("JOIN animals a ON a.id = c.animal_id").
		Where("c.assigned_doctor_id IS NULL AND c.status = ?", models.CaseStatusPending).
		Order("c.created_at DESC, c.id DESC").
		Scan(&rows).Error
	return rows, err
}

// Accept claims a pending unassigned case. The update is conditional so two
// doctors racing for the same case cannot both win.
func (s *CaseService) Accept(doctorID, caseID uint) error {
	res := s.db.Model(&models.Case{}).
		Where("id = ? AND status = ? AND assigned_doctor_id IS NULL", caseID, models.CaseStatusPending).
		Updates(map[string]interface{}{
			"assigned_doctor_id": doctorID,
			"status":             models.CaseStatusInProgress,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to accept case: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.Case{}).Where("id = ?", caseID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCaseNotFound
	}
	return ErrCaseTaken
}

func (s *CaseService) assigned(tx *gorm.DB, doctorID, caseID uint) (*models.Case, error) {
	var c models.Case
	if err := tx.First(&c, caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	if c.AssignedDoctorID == nil || *c.AssignedDoctorID != doctorID {
		return nil, ErrNotAssigned
	}
	return &c, nil
}

func (s *CaseService) Diagnose(doctorID, caseID uint, in Diagnosis) error {
	updates := map[string]interface{}{}
	if v := strings.TrimSpace(in.Diagnosis); v != "" {
		updates["diagnosis"] = v
	}
	if v := strings.TrimSpace(in.Medication); v != "" {
		updates["prescribed_medicine"] = v
	}
	if v := strings.TrimSpace(in.Notes); v != "" {
		updates["notes"] = v
	}
	if v := strings.TrimSpace(in.DiseaseName); v != "" {
		updates["disease_name"] = v
	}
	if len(updates) == 0 {
		return ErrEmptyDiagnosis
	}

	c, err := s.assigned(s.db, doctorID, caseID)
	if err != nil {
		return err
	}
	if c.Status == models.CaseStatusResolved {
		return ErrCaseResolved
	}
	return s.db.Model(c).Updates(updates).Error
}

// Resolve closes an in-progress case and credits the doctor.
func (s *CaseService) Resolve(doctorID, caseID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.assigned(tx, doctorID, caseID)
		if err != nil {
			return err
		}
		switch c.Status {
		case models.CaseStatusResolved:
			return ErrCaseResolved
		case models.CaseStatusInProgress:
		default:
			return ErrCaseNotInProgress
		}

		res := tx.Model(&models.Case{}).
			Where("id = ? AND status = ?", caseID, models.CaseStatusInProgress).
			Update("status", models.CaseStatusResolved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrCaseResolved
		}

		return tx.Model(&models.Doctor{}).Where("id = ?", doctorID).
			UpdateColumn("cases_handled", gorm.Expr("cases_handled + ?", 1)).Error
	})
}

// RequestVisit records an on-site examination. The location falls back to
// where the animal was reported.
func (s *CaseService) RequestVisit(doctorID, caseID uint, in VisitInput) (*models.VisitRequest, error) {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, ErrVisitDate
	}

	c, err := s.assigned(s.db, doctorID, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status == models.CaseStatusResolved {
		return nil, ErrCaseResolved
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		var animal models.Animal
		if err := s.db.Select("location").First(&animal, c.AnimalID).Error; err == nil {
			location = animal.Location
		}
	}

	visit := models.VisitRequest{
		CaseID:          caseID,
		DoctorID:        doctorID,
		RecommendedDate: date,
		RecommendedTime: strings.TrimSpace(in.Time),
		Location:        location,
	}
	if err := s.db.Create(&visit).Error; err != nil {
		return nil, fmt.Errorf("failed to create visit request: %w", err)
	}
	return &visit, nil
}

// History lists the doctor's cases. search matches owner name, animal type
// or disease name, case-insensitively.
func (s *CaseService) History(doctorID uint, search string) ([]HistoryRow, error) {
	q := s.db.Table("cases AS c").
		Select("c.id, c.user_id, c.symptoms, c.image_url, c.disease_name, c.diagnosis, c.prescribed_medicine, c.notes, c.status, c.created_at, c.updated_at, " +
			"u.name AS user_name, a.animal_type, a.location").
		Joins("JOIN users u ON u.id = c.user_id").
		Joins("JOIN animals a ON a.id = c.animal_id").
		Where("c.assigned_doctor_id = ?", doctorID)

	if strings.TrimSpace(search) != "" {
		term := database.ContainsFold(search)
		like := " LIKE ?" + database.LikeEscape
		q = q.Where("(LOWER(u.name)"+like+" OR LOWER(a.animal_type)"+like+" OR LOWER(c.disease_name)"+like+")", term, term, term)
	}

	rows := []HistoryRow{}
	err := q.Order("c.created_at DESC, c.id DESC").Scan(&rows).Error
	return rows, err
}

func (s *CaseService) Visits(doctorID uint) ([]VisitRow, error) {
	rows := []VisitRow{}
	err := s.db.Table("visit_requests AS v").
		Select("v.id, v.case_id, v.recommended_date, v.recommended_time, v.location, v.created_at, " +
			"u.name AS user_name, u.phone, a.animal_type").
		Joins("JOIN cases c ON c.id = v.case_id").
		Joins("JOIN users u ON u.id = c.user_id").
		Joins("JOIN animals a ON a.id = c.animal_id").
		Where("v.doctor_id = ?", doctorID).
		Order("v.created_at DESC, v.id DESC").
		Scan(&rows).Error
	return rows, err
}

// Participant returns the case owner's user id when the doctor is assigned.
func (s *CaseService) Participant(doctorID, caseID uint) (uint, error) {
	c, err := s.assigned(s.db, doctorID, caseID)
	if err != nil {
		return 0, err
	}
	return c.UserID, nil
}

// Recipient resolves who a doctor's message on caseID goes to. It defaults
// to the case owner and may not name anyone else.
func (s *CaseService) Recipient(doctorID, caseID uint, requested *uint) (uint, error) {
	ownerID, err := s.Participant(doctorID, caseID)
	if err != nil {
		return 0, err
	}
	if requested != nil && *requested != ownerID {
		return 0, ErrWrongRecipient
	}
	return ownerID, nil
}
