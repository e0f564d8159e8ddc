package models

import "time"

// ClosetItem is one piece of clothing in a session's Virtual Closet. Items are
// never edited; the UI deletes and re-adds instead.
type ClosetItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	SessionID string    `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Category  Category  `gorm:"not null" json:"category"`
	Image     string    `json:"image"` // absolute URL or /images/{key}
	CreatedAt time.Time `json:"created_at"`
}

// ImageBlob holds uploaded image bytes for the lifetime of the process.
type ImageBlob struct {
	Key       string    `gorm:"column:image_key;primaryKey" json:"key"`
	SessionID string    `gorm:"index;not null" json:"-"`
	MIMEType  string    `json:"mime_type"`
	Data      []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func ImageReference(key string) string {
	return "/images/" + key
}
