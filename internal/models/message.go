package models

import "time"

// Message is one entry of a case-scoped conversation.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID *uint     `gorm:"index" json:"recipient_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	Case        Case      `gorm:"foreignKey:CaseID" json:"-"`
	Sender      User      `gorm:"foreignKey:SenderID" json:"-"`
}
