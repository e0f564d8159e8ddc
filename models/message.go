package models

import "time"

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one entry of a session's conversation. Seq gives the append order;
// rows are inserted once and never updated.
type Message struct {
	Seq       uint             `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string           `gorm:"uniqueIndex;not null" json:"id"`
	SessionID string           `gorm:"index;not null" json:"-"`
	Sender    Sender           `gorm:"not null" json:"sender"`
	Text      string           `gorm:"type:text" json:"text"`
	Image     *string          `json:"image,omitempty"`
	Outfit    *GeneratedOutfit `gorm:"serializer:json" json:"outfit,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (m Message) HasOutfit() bool {
	return m.Outfit != nil
}
