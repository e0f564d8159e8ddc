package dbhelper

import (
	"fmt"

	"aurastylist/models"

	"gorm.io/gorm"
)

func SetupCleaner(db *gorm.DB) func() {

	return func() {

		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SavedOutfit{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Message{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ImageBlob{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ClosetItem{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Session{})

		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func Migrate(db *gorm.DB, model interface{}) error {
	if err := db.AutoMigrate(model); err != nil {
		return fmt.Errorf("migrating %T: %w", model, err)
	}
	return nil
}
