package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrMessageTooLong = errors.New("message is too long")
)

const maxMessageLength = 2000

// MessageRow is a thread entry with the sender's display name.
type MessageRow struct {
	ID          uint      `json:"id"`
	CaseID      uint      `json:"case_id"`
	SenderID    uint      `json:"sender_id"`
	RecipientID *uint     `json:"recipient_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	SenderName  string    `json:"sender_name"`
}

// MessageService stores case conversations. Callers decide who may post to
// or read a case; this layer only persists and lists.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

func (s *MessageService) Send(caseID, senderID uint, recipientID *uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if len(body) > maxMessageLength {
		return nil, fmt.Errorf("%w (max %d characters)", ErrMessageTooLong, maxMessageLength)
	}

	msg := models.Message{
		CaseID:      caseID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     body,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return &msg, nil
}

// Thread lists a case's messages oldest first.
func (s *MessageService) Thread(caseID uint) ([]MessageRow, error) {
	var rows []MessageRow
	err := s.db.Table("messages AS m").
		Select("m.id, m.case_id, m.sender_id, m.recipient_id, m.message, m.created_at, u.name AS sender_name").
		Joins("JOIN users u ON u.id = m.sender_id").
		Where("m.case_id = ?", caseID).
		Order("m.created_at ASC, m.id ASC").
		Scan(&rows).Error
	return rows, err
}
