package models

import "time"

// TargetAll addresses a broadcast to every role.
const TargetAll = "all"

// Notification is a role-targeted broadcast. Delivery is not tracked per user.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	TargetRole string    `gorm:"size:20;not null;default:'all';index" json:"target_role"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
