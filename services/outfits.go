package services

import (
	"context"
	"fmt"

	"aurastylist/metrics"
	"aurastylist/models"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SaveResult string

const (
	SaveResultSaved             SaveResult = "saved"
	SaveResultNoResolvableItems SaveResult = "no_resolvable_items"
	SaveResultDuplicateName     SaveResult = "duplicate_name"
)

type OutfitStore struct {
	DB           *gorm.DB
	Closet       *ClosetStore
	Conversation *ConversationStore
}

func (s *OutfitStore) List(ctx context.Context, sessionID string) ([]models.SavedOutfit, error) {
	outfits := []models.SavedOutfit{}
	if err := s.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("rowid ASC").Find(&outfits).Error; err != nil {
		return nil, fmt.Errorf("list saved outfits: %w", err)
	}
	return outfits, nil
}

// ListResolved returns the saved outfits with each item joined to the current
// closet.
func (s *OutfitStore) ListResolved(ctx context.Context, sessionID string) ([]ResolvedOutfit, error) {
	outfits, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	closet, err := s.Closet.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resolved := make([]ResolvedOutfit, 0, len(outfits))
	for _, outfit := range outfits {
		resolved = append(resolved, ResolveSavedOutfit(outfit, closet))
	}
	return resolved, nil
}

// SaveFromMessage saves the outfit carried by an assistant message.
func (s *OutfitStore) SaveFromMessage(ctx context.Context, sessionID string, messageID string) (SaveResult, *models.SavedOutfit, error) {
	message, err := s.Conversation.Find(ctx, sessionID, messageID)
	if err != nil {
		return "", nil, err
	}
	if message.Outfit == nil {
		return "", nil, ErrNoOutfit
	}
	return s.Save(ctx, sessionID, *message.Outfit)
}

// Save reconciles the outfit against the session's current closet and stores
// it. Zero resolvable items and an already used name are no-ops reported
// through the SaveResult, not errors.
func (s *OutfitStore) Save(ctx context.Context, sessionID string, outfit models.GeneratedOutfit) (SaveResult, *models.SavedOutfit, error) {
	logger := log.Ctx(ctx).With().Str("session_id", sessionID).Str("outfit", outfit.OutfitName).Logger()

	closet, err := s.Closet.List(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	reconciled := ReconcileOutfit(outfit, closet)
	if len(reconciled.Dropped) > 0 {
		metrics.DroppedSuggestionsTotal.Add(float64(len(reconciled.Dropped)))
		logger.Warn().Strs("dropped", reconciled.Dropped).Msg("outfit items not found in closet")
	}
	if len(reconciled.Items) == 0 {
		metrics.OutfitSavesTotal.WithLabelValues(string(SaveResultNoResolvableItems)).Inc()
		logger.Info().Msg("outfit not saved, nothing matched the closet")
		return SaveResultNoResolvableItems, nil, nil
	}

	saved := models.SavedOutfit{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Name:      outfit.OutfitName,
		Items:     reconciled.Items,
	}
	result := SaveResultSaved
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.SavedOutfit{}).Where("session_id = ? AND name = ?", sessionID, saved.Name).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			result = SaveResultDuplicateName
			return nil
		}
		return tx.Create(&saved).Error
	})
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Session: %s] saving outfit %q: %w", sessionID, saved.Name, err))
		return "", nil, fmt.Errorf("save outfit: %w", err)
	}
	metrics.OutfitSavesTotal.WithLabelValues(string(result)).Inc()
	if result == SaveResultDuplicateName {
		logger.Info().Msg("outfit not saved, name already used")
		return result, nil, nil
	}
	logger.Info().Str("outfit_id", saved.ID).Int("items", len(saved.Items)).Msg("outfit saved")
	return result, &saved, nil
}
