package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/events"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/testsupport"
)

type recordingPublisher struct {
	events []events.NotificationEvent
	err    error
}

func (p *recordingPublisher) PublishNotification(_ context.Context, e events.NotificationEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestBroadcastPersistsAndPublishes(t *testing.T) {
	db := testsupport.NewDB(t)
	pub := &recordingPublisher{}
	svc := NewNotificationService(db, pub)

	n, err := svc.Broadcast(context.Background(), "Vaccination drive", "FMD vaccines on Monday", "")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if n.TargetRole != models.TargetAll {
		t.Errorf("target = %q, want all", n.TargetRole)
	}
	if len(pub.events) != 1 || pub.events[0].ID != n.ID || pub.events[0].RoutingKey() != "notification.all" {
		t.Fatalf("published events = %+v", pub.events)
	}
}

func TestBroadcastSurvivesPublishFailure(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewNotificationService(db, &recordingPublisher{err: errors.New("broker down")})

	if _, err := svc.Broadcast(context.Background(), "t", "m", models.RoleDoctor); err != nil {
		t.Fatalf("broadcast should not fail on publish error: %v", err)
	}
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 1 {
		t.Fatalf("notifications = %d, want 1", count)
	}
}

func TestBroadcastValidation(t *testing.T) {
	svc := NewNotificationService(testsupport.NewDB(t), nil)

	if _, err := svc.Broadcast(context.Background(), " ", "m", ""); !errors.Is(err, ErrNotificationIncomplete) {
		t.Errorf("blank title: err = %v", err)
	}
	if _, err := svc.Broadcast(context.Background(), "t", "m", "farmers"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("bad target: err = %v", err)
	}
}

func TestForRoleFiltersTargets(t *testing.T) {
	db := testsupport.NewDB(t)
	svc := NewNotificationService(db, nil)
	ctx := context.Background()

	for _, target := range []string{models.TargetAll, models.RoleDoctor, models.RoleUser, models.RoleAdmin} {
		if _, err := svc.Broadcast(ctx, "title "+target, "body", target); err != nil {
			t.Fatalf("broadcast %s: %v", target, err)
		}
	}

	doctorFeed, err := svc.ForRole(models.RoleDoctor, 0)
	if err != nil {
		t.Fatalf("for role: %v", err)
	}
	if len(doctorFeed) != 2 {
		t.Fatalf("doctor feed has %d entries, want 2", len(doctorFeed))
	}
	for _, n := range doctorFeed {
		if n.TargetRole != models.RoleDoctor && n.TargetRole != models.TargetAll {
			t.Errorf("doctor feed contains %q", n.TargetRole)
		}
	}

	all, err := svc.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("list has %d entries, want 4", len(all))
	}
}
