package services

import (
	"context"
	"errors"
	"fmt"

	"aurastylist/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const GreetingText = "Hello! I'm Aura, your personal stylist. I'm here to help you discover your best look. What style adventure are we going on today?"

type demoClosetItem struct {
	Name     string
	Category models.Category
	Image    string
}

// demoCloset is listed in display order.
var demoCloset = []demoClosetItem{
	{"Navy Blue Blazer", models.CategoryOuterwear, "https://picsum.photos/seed/blazer/300/400"},
	{"High-Waisted Jeans", models.CategoryPants, "https://picsum.photos/seed/jeans/300/400"},
	{"White Silk Blouse", models.CategoryTops, "https://picsum.photos/seed/blouse/300/400"},
	{"Black Leather Ankle Boots", models.CategoryShoes, "https://picsum.photos/seed/boots/300/400"},
	{"Gold Pendant Necklace", models.CategoryAccessories, "https://picsum.photos/seed/necklace/300/400"},
	{"Floral Midi Skirt", models.CategorySkirts, "https://picsum.photos/seed/skirt/300/400"},
	{"Striped T-Shirt", models.CategoryTops, "https://picsum.photos/seed/tshirt/300/400"},
	{"Tan Trench Coat", models.CategoryOuterwear, "https://picsum.photos/seed/trench/300/400"},
}

type SessionService struct {
	DB             *gorm.DB
	Closet         *ClosetStore
	Conversation   *ConversationStore
	SeedDemoCloset bool
}

// Create starts a session in the idle state with Aura's greeting as the first
// message.
func (s *SessionService) Create(ctx context.Context) (*models.Session, error) {
	return s.create(ctx, nil)
}

func (s *SessionService) create(ctx context.Context, telegramChatID *int64) (*models.Session, error) {
	session := models.Session{
		ID:             uuid.NewString(),
		State:          models.SessionIdle,
		TelegramChatID: telegramChatID,
	}
	if err := s.DB.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if _, err := s.Conversation.Append(ctx, session.ID, models.Message{
		ID:     "aura-intro",
		Sender: models.SenderAssistant,
		Text:   GreetingText,
	}); err != nil {
		return nil, err
	}
	if s.SeedDemoCloset {
		// Add prepends, so walk the list backwards to keep display order.
		for i := len(demoCloset) - 1; i >= 0; i-- {
			item := demoCloset[i]
			if _, err := s.Closet.Add(ctx, session.ID, item.Name, item.Category, item.Image); err != nil {
				return nil, err
			}
		}
	}
	log.Ctx(ctx).Info().Str("session_id", session.ID).Bool("demo_closet", s.SeedDemoCloset).Msg("session created")
	return &session, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return &session, nil
}

func (s *SessionService) GetOrCreateForTelegram(ctx context.Context, chatID int64) (*models.Session, error) {
	var session models.Session
	err := s.DB.WithContext(ctx).Where("telegram_chat_id = ?", chatID).Take(&session).Error
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load telegram session %d: %w", chatID, err)
	}
	return s.create(ctx, &chatID)
}

// BeginAwaiting is the idle -> awaiting_response transition. It is a single
// conditional update, so of two concurrent sends only one gets through.
func (s *SessionService) BeginAwaiting(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND state = ?", id, models.SessionIdle).
		Update("state", models.SessionAwaitingResponse)
	if result.Error != nil {
		return fmt.Errorf("begin awaiting response: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return ErrAwaitingResponse
	}
	return nil
}

// FinishAwaiting is the awaiting_response -> idle transition.
func (s *SessionService) FinishAwaiting(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND state = ?", id, models.SessionAwaitingResponse).
		Update("state", models.SessionIdle)
	if result.Error != nil {
		return fmt.Errorf("finish awaiting response: %w", result.Error)
	}
	return nil
}
