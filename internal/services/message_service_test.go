package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
)

func TestMessageThread(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewMessageService(db)

	farmer := testsupport.CreateUser(t, db, "Farmer Singh", "farmer@x.com", models.RoleUser)
	docUser, _ := testsupport.CreateDoctor(t, db, "Dr. Kumar", "doc@x.com", models.DoctorStatusApproved)
	c := testsupport.CreateCase(t, db, farmer.ID, "Cow", "North", "fever")

	if _, err := svc.Send(c.ID, farmer.ID, &docUser.ID, "  she stopped eating  "); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Send(c.ID, docUser.ID, &farmer.ID, "check her temperature"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	thread, err := svc.Thread(c.ID)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(thread) != 2 {
		t.Fatalf("thread has %d messages, want 2", len(thread))
	}
	if thread[0].SenderName != "Farmer Singh" || thread[0].Message != "she stopped eating" {
		t.Errorf("first message = %+v", thread[0])
	}
	if thread[1].SenderName != "Dr. Kumar" {
		t.Errorf("second message sender = %q", thread[1].SenderName)
	}

	other, err := svc.Thread(c.ID + 100)
	if err != nil || len(other) != 0 {
		t.Fatalf("unrelated thread = %v, %v", other, err)
	}
}

func TestSendRejectsEmptyAndOversized(t *testing.T) {
	svc := NewMessageService(testsupport.NewDB(t))

	if _, err := svc.Send(1, 1, nil, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("empty: err = %v", err)
	}
	if _, err := svc.Send(1, 1, nil, strings.Repeat("a", maxMessageLength+1)); !errors.Is(err, ErrMessageTooLong) {
		t.Errorf("oversized: err = %v", err)
	}
}
