package models

import "time"

type SessionState string

const (
	SessionIdle             SessionState = "idle"
	SessionAwaitingResponse SessionState = "awaiting_response"
)

type Session struct {
	ID             string       `gorm:"primaryKey" json:"id"`
	State          SessionState `gorm:"not null;default:idle" json:"state"`
	TelegramChatID *int64       `gorm:"uniqueIndex" json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
