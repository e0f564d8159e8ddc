package services

import (
	"context"
	"errors"
	"fmt"

	"aurastylist/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ImageCacheServiceProvider interface {
	Save(ctx context.Context, sessionID string, image *InlineImage) (string, error)
	Get(ctx context.Context, sessionID string, key string) (*models.ImageBlob, error)
}

// ImageCacheService stores uploaded images in the session database and serves
// reads through a loadable ristretto cache.
type ImageCacheService struct {
	db    *gorm.DB
	cache *cache.LoadableCache[*models.ImageBlob]
}

func NewImageCacheService(db *gorm.DB) (*ImageCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 27, // 128MB of image bytes
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	loadFunction := func(ctx context.Context, key any) (*models.ImageBlob, []store.Option, error) {
		imageKey, ok := key.(string)
		if !ok {
			return nil, nil, fmt.Errorf("invalid key type provided to image cache: expected string, got %T", key)
		}
		log.Ctx(ctx).Debug().Str("image_key", imageKey).Msg("image cache miss")
		var blob models.ImageBlob
		if err := db.WithContext(ctx).Where("image_key = ?", imageKey).Take(&blob).Error; err != nil {
			return nil, nil, err
		}
		return &blob, []store.Option{store.WithCost(int64(len(blob.Data)))}, nil
	}

	return &ImageCacheService{
		db: db,
		cache: cache.NewLoadable[*models.ImageBlob](
			loadFunction,
			cache.New[*models.ImageBlob](ristrettoStore),
		),
	}, nil
}

func (s *ImageCacheService) Save(ctx context.Context, sessionID string, image *InlineImage) (string, error) {
	blob := models.ImageBlob{
		Key:       uuid.NewString(),
		SessionID: sessionID,
		MIMEType:  image.MIMEType,
		Data:      image.Data,
	}
	if err := s.db.WithContext(ctx).Create(&blob).Error; err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return blob.Key, nil
}

// Get returns ErrNotFound for unknown keys and for keys owned by another session.
func (s *ImageCacheService) Get(ctx context.Context, sessionID string, key string) (*models.ImageBlob, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	blob, err := s.cache.Get(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", key, err)
	}
	if blob == nil || blob.SessionID != sessionID {
		return nil, ErrNotFound
	}
	return blob, nil
}
