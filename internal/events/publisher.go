// Package events fans admin broadcasts out to external consumers.
package events

import (
	"context"
	"time"
)

// NotificationEvent is the wire payload of a broadcast.
type NotificationEvent struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	TargetRole string    `json:"target_role"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoutingKey addresses the event to consumers bound for its target role.
func (e NotificationEvent) RoutingKey() string {
	return "notification." + e.TargetRole
}

type Publisher interface {
	PublishNotification(ctx context.Context, event NotificationEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishNotification(context.Context, NotificationEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
