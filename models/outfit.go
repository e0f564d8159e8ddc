package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type ShoppingLink struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Price *string `json:"price,omitempty"`
}

// UnmarshalJSON accepts the price as a string or a bare number. Any other
// price value is dropped rather than failing the whole outfit.
func (l *ShoppingLink) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title string          `json:"title"`
		URL   string          `json:"url"`
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Title = raw.Title
	l.URL = raw.URL
	l.Price = nil

	price := bytes.TrimSpace(raw.Price)
	if len(price) == 0 || bytes.Equal(price, []byte("null")) {
		return nil
	}
	var text string
	if err := json.Unmarshal(price, &text); err == nil {
		l.Price = &text
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(price, &number); err == nil {
		text = number.String()
		l.Price = &text
	}
	return nil
}

type OutfitItemSuggestion struct {
	ItemName      string         `json:"itemName"`
	StylingNotes  string         `json:"stylingNotes"`
	ShoppingLinks []ShoppingLink `json:"shoppingLinks"`
}

// GeneratedOutfit is the structured reply the model produces on request. It
// references closet items by name only.
type GeneratedOutfit struct {
	OutfitName string                 `json:"outfitName"`
	IntroText  string                 `json:"introText"`
	Items      []OutfitItemSuggestion `json:"items"`
}

type SavedOutfit struct {
	ID        string                   `gorm:"primaryKey" json:"id"`
	SessionID string                   `gorm:"uniqueIndex:idx_saved_outfit_name;not null" json:"-"`
	Name      string                   `gorm:"uniqueIndex:idx_saved_outfit_name;not null" json:"name"`
	Items     []SavedOutfitItemDetails `gorm:"serializer:json" json:"items"`
	CreatedAt time.Time                `json:"created_at"`
}

// SavedOutfitItemDetails points at a closet item by id. The closet item may be
// deleted later, so readers must treat the id as possibly dangling.
type SavedOutfitItemDetails struct {
	ClosetItemID  int64          `json:"closetItemId"`
	StylingNotes  string         `json:"stylingNotes"`
	ShoppingLinks []ShoppingLink `json:"shoppingLinks"`
}
