package dbhelper

import (
	"fmt"

	"aurastylist/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB opens the session database. The DSN points at an in-memory SQLite
// database, so everything lives as long as the process does.
func SetupDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	// a memory database disappears with its last connection
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	for _, model := range []interface{}{
		&models.Session{},
		&models.ClosetItem{},
		&models.ImageBlob{},
		&models.Message{},
		&models.SavedOutfit{},
	} {
		if err := Migrate(db, model); err != nil {
			return nil, err
		}
	}
	log.Info().Str("dsn", dsn).Msg("session database ready")
	return db, nil
}

// SetupTestDB gives every caller its own private in-memory database.
func SetupTestDB() *gorm.DB {
	db, err := SetupDB(fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		panic(err)
	}
	return db
}
