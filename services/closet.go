package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"aurastylist/models"

	"gorm.io/gorm"
)

// closetIDSource hands out millisecond timestamps, bumped forward when two
// items land in the same millisecond.
type closetIDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func (s *closetIDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

var closetIDs = &closetIDSource{now: time.Now}

// ClosetStore keeps each session's Virtual Closet, newest item first.
type ClosetStore struct {
	DB *gorm.DB
}

func (s *ClosetStore) List(ctx context.Context, sessionID string) ([]models.ClosetItem, error) {
	items := []models.ClosetItem{}
	if err := s.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list closet: %w", err)
	}
	return items, nil
}

// Add prepends a new item to the closet.
func (s *ClosetStore) Add(ctx context.Context, sessionID string, name string, category models.Category, image string) (*models.ClosetItem, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	item := models.ClosetItem{
		ID:        closetIDs.Next(),
		SessionID: sessionID,
		Name:      name,
		Category:  category,
		Image:     image,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("add closet item: %w", err)
	}
	return &item, nil
}

func (s *ClosetStore) Delete(ctx context.Context, sessionID string, id int64) error {
	result := s.DB.WithContext(ctx).Where("session_id = ? AND id = ?", sessionID, id).Delete(&models.ClosetItem{})
	if result.Error != nil {
		return fmt.Errorf("delete closet item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Find reports ok=false for ids that were never added or have been deleted.
func (s *ClosetStore) Find(ctx context.Context, sessionID string, id int64) (*models.ClosetItem, bool, error) {
	var item models.ClosetItem
	err := s.DB.WithContext(ctx).Where("session_id = ? AND id = ?", sessionID, id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find closet item %d: %w", id, err)
	}
	return &item, true, nil
}
