package services

import (
	"context"
	"errors"
	"fmt"

	"aurastylist/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationStore is append-only: there is no update or delete.
type ConversationStore struct {
	DB *gorm.DB
}

func messageIDPrefix(sender models.Sender) string {
	if sender == models.SenderUser {
		return "user"
	}
	return "aura"
}

func (s *ConversationStore) Append(ctx context.Context, sessionID string, message models.Message) (*models.Message, error) {
	message.Seq = 0
	message.SessionID = sessionID
	if message.ID == "" {
		message.ID = fmt.Sprintf("%s-%s", messageIDPrefix(message.Sender), uuid.NewString())
	} else {
		// fixed ids such as the greeting are only unique within a session
		message.ID = fmt.Sprintf("%s-%s", message.ID, sessionID)
	}
	if err := s.DB.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return &message, nil
}

func (s *ConversationStore) List(ctx context.Context, sessionID string) ([]models.Message, error) {
	messages := []models.Message{}
	if err := s.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("seq ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *ConversationStore) Find(ctx context.Context, sessionID string, messageID string) (*models.Message, error) {
	var message models.Message
	err := s.DB.WithContext(ctx).Where("session_id = ? AND id = ?", sessionID, messageID).Take(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find message %s: %w", messageID, err)
	}
	return &message, nil
}

// LatestOutfit returns the most recent assistant message carrying an outfit.
func (s *ConversationStore) LatestOutfit(ctx context.Context, sessionID string) (*models.Message, error) {
	var message models.Message
	err := s.DB.WithContext(ctx).
		Where("session_id = ? AND sender = ? AND outfit IS NOT NULL", sessionID, models.SenderAssistant).
		Order("seq DESC").
		Take(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find latest outfit: %w", err)
	}
	return &message, nil
}
