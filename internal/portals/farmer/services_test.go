package farmer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/prediction"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
)

func TestSubmitCreatesAnimalAndCase(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewCaseService(db, prediction.NewFixedPredictor(func(int) int { return 3 }))
	farmer := testsupport.CreateUser(t, db, "Farmer", "farmer@x.com", models.RoleUser)

	c, guess, err := svc.Submit(farmer.ID, CaseInput{
		AnimalType: "Cow", Symptoms: "swollen udder", Age: 4, Weight: 350.5, Location: "Pune",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if guess.Disease != "Mastitis" {
		t.Fatalf("prediction = %+v", guess)
	}

	var animals, cases int64
	db.Model(&models.Animal{}).Count(&animals)
	db.Model(&models.Case{}).Count(&cases)
	if animals != 1 || cases != 1 {
		t.Fatalf("animals = %d, cases = %d, want 1 and 1", animals, cases)
	}

	stored := testsupport.Reload(t, db, c)
	if stored.Status != models.CaseStatusPending || stored.UserID != farmer.ID || stored.ImageURL != models.DefaultCaseImage {
		t.Fatalf("stored case = %+v", stored)
	}
	var saved prediction.Prediction
	if err := json.Unmarshal(stored.AIPrediction, &saved); err != nil || saved.Disease != "Mastitis" {
		t.Fatalf("stored prediction = %s, %v", stored.AIPrediction, err)
	}
}

func TestSubmitValidation(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewCaseService(db, prediction.NewRandomPredictor())

	tests := []struct {
		name string
		in   CaseInput
		want error
	}{
		{"missing animal type", CaseInput{Symptoms: "fever"}, ErrCaseIncomplete},
		{"missing symptoms", CaseInput{AnimalType: "Cow", Symptoms: "  "}, ErrCaseIncomplete},
		{"negative age", CaseInput{AnimalType: "Cow", Symptoms: "fever", Age: -1}, ErrInvalidAnimal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Submit(1, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	var animals int64
	db.Model(&models.Animal{}).Count(&animals)
	if animals != 0 {
		t.Fatalf("invalid submissions created %d animals", animals)
	}
}

func TestNumberAcceptsStrings(t *testing.T) {
	var in CaseInput
	body := `{"animalType":"Goat","symptoms":"cough","age":"3","weight":"42.5"}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Age != 3 || in.Weight != 42.5 {
		t.Fatalf("age = %v, weight = %v", in.Age, in.Weight)
	}

	if err := json.Unmarshal([]byte(`{"age":"","weight":null}`), &in); err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if in.Age != 0 || in.Weight != 0 {
		t.Fatalf("empty values = %v, %v", in.Age, in.Weight)
	}

	if err := json.Unmarshal([]byte(`{"age":"three"}`), &in); err == nil {
		t.Fatal("expected an error for a non-numeric age")
	}
}

func TestDoctorContact(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewCaseService(db, prediction.NewRandomPredictor())

	owner := testsupport.CreateUser(t, db, "Owner", "owner@x.com", models.RoleUser)
	stranger := testsupport.CreateUser(t, db, "Stranger", "stranger@x.com", models.RoleUser)
	docUser, doc := testsupport.CreateDoctor(t, db, "Dr. A", "a@x.com", models.DoctorStatusApproved)
	c := testsupport.CreateCase(t, db, owner.ID, "Cow", "North", "fever")

	if _, err := svc.DoctorContact(owner.ID, c.ID); !errors.Is(err, ErrNoDoctor) {
		t.Fatalf("unassigned: err = %v", err)
	}
	db.Model(c).Updates(map[string]interface{}{"assigned_doctor_id": doc.ID, "status": models.CaseStatusInProgress})

	got, err := svc.DoctorContact(owner.ID, c.ID)
	if err != nil || got != docUser.ID {
		t.Fatalf("contact = %d, %v; want %d", got, err, docUser.ID)
	}
	if _, err := svc.DoctorContact(stranger.ID, c.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger: err = %v", err)
	}
	if err := svc.CheckOwner(owner.ID, 9999); !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("missing case: err = %v", err)
	}

	rows, err := svc.List(owner.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("list = %+v, %v", rows, err)
	}
	if rows[0].DoctorName == nil || *rows[0].DoctorName != "Dr. A" || rows[0].AnimalType != "Cow" {
		t.Fatalf("row = %+v", rows[0])
	}
}

func TestApprovedDoctors(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewDoctorService(db)

	_, low := testsupport.CreateDoctor(t, db, "Dr. Low", "low@x.com", models.DoctorStatusApproved)
	_, high := testsupport.CreateDoctor(t, db, "Dr. High", "high@x.com", models.DoctorStatusApproved)
	testsupport.CreateDoctor(t, db, "Dr. Wait", "wait@x.com", models.DoctorStatusPending)
	db.Model(low).Update("rating", 3.5)
	db.Model(high).Updates(map[string]interface{}{"rating": 4.8, "specialization": "Poultry"})

	all, err := svc.Approved("", 0)
	if err != nil {
		t.Fatalf("approved: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Dr. High" {
		t.Fatalf("approved = %+v", all)
	}

	poultry, err := svc.Approved("poultry", 0)
	if err != nil || len(poultry) != 1 || poultry[0].ID != high.ID {
		t.Fatalf("poultry = %+v, %v", poultry, err)
	}

	if wild, err := svc.Approved("_", 0); err != nil || len(wild) != 0 {
		t.Fatalf("wildcard search = %+v, %v", wild, err)
	}

	top, err := svc.Approved("", 1)
	if err != nil || len(top) != 1 {
		t.Fatalf("top = %+v, %v", top, err)
	}
}

func TestProfileUpdate(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewProfileService(db)
	farmer := testsupport.CreateUser(t, db, "Farmer", "farmer@x.com", models.RoleUser)

	if err := svc.Update(farmer.ID, " ", "123"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("blank name: err = %v", err)
	}
	if err := svc.Update(farmer.ID, "Ravi", "9876543210"); err != nil {
		t.Fatalf("update: %v", err)
	}
	p, err := svc.Get(farmer.ID)
	if err != nil || p.Name != "Ravi" || p.Phone != "9876543210" || p.Email != "farmer@x.com" {
		t.Fatalf("profile = %+v, %v", p, err)
	}
	if _, err := svc.Get(9999); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("missing: err = %v", err)
	}
}
