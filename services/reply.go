package services

import (
	"encoding/json"
	"strings"

	"aurastylist/models"
)

type ReplyKind string

const (
	ReplyText   ReplyKind = "text"
	ReplyOutfit ReplyKind = "outfit"
)

// Reply is a classified model response. Outfit is set only for ReplyOutfit;
// Text always holds the raw string for plain replies and the intro text for
// outfits.
type Reply struct {
	Kind   ReplyKind
	Text   string
	Outfit *models.GeneratedOutfit
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// language tag, e.g. ```json
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseReply never fails: anything that is not a complete outfit object comes
// back as plain text carrying raw unchanged.
func ParseReply(raw string) Reply {
	plain := Reply{Kind: ReplyText, Text: raw}

	var outfit models.GeneratedOutfit
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &outfit); err != nil {
		return plain
	}
	if strings.TrimSpace(outfit.OutfitName) == "" || strings.TrimSpace(outfit.IntroText) == "" || len(outfit.Items) == 0 {
		return plain
	}
	return Reply{Kind: ReplyOutfit, Text: outfit.IntroText, Outfit: &outfit}
}
