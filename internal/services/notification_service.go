package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/events"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotificationIncomplete = errors.New("title and message are required")
	ErrInvalidTarget          = errors.New("target_role must be all, user, doctor or admin")
)

const defaultNotificationLimit = 50

// NotificationService stores role-targeted broadcasts and lets each role read
// the ones addressed to it.
type NotificationService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewNotificationService(db *gorm.DB, publisher events.Publisher) *NotificationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NotificationService{db: db, publisher: publisher}
}

// Broadcast persists the notification, then hands it to the publisher.
// A publish failure is logged; the stored row is the source of truth.
func (s *NotificationService) Broadcast(ctx context.Context, title, message, targetRole string) (*models.Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return nil, ErrNotificationIncomplete
	}
	if targetRole == "" {
		targetRole = models.TargetAll
	}
	if targetRole != models.TargetAll && !models.ValidRoles[targetRole] {
		return nil, ErrInvalidTarget
	}

	n := models.Notification{Title: title, Message: message, TargetRole: targetRole}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	err := s.publisher.PublishNotification(ctx, events.NotificationEvent{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		TargetRole: n.TargetRole,
		CreatedAt:  n.CreatedAt,
	})
	if err != nil {
		slog.Error("notification publish failed", "action", "broadcast_notification", "notification_id", n.ID, "error", err)
	}

	return &n, nil
}

// List returns the latest broadcasts regardless of target.
func (s *NotificationService) List(limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}
	var out []models.Notification
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// ForRole returns the latest broadcasts addressed to role or to everyone.
func (s *NotificationService) ForRole(role string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}
	var out []models.Notification
	err := s.db.Where("target_role IN ?", []string{role, models.TargetAll}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
