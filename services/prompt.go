package services

import (
	"fmt"
	"strings"

	"aurastylist/models"
)

// OutfitPlaceholder stands in for an assistant message that carried an outfit
// so structured payloads are never fed back to the model as prose.
const OutfitPlaceholder = "[Suggested an outfit from the Virtual Closet]"

const AuraSystemInstruction = `You are "Aura," an expert AI personal stylist and fashion guide.

## 1. Your Persona
Your personality is encouraging, knowledgeable, chic, and slightly playful. You are the user's biggest style advocate. Your primary goal is to make them feel confident and help them discover and refine their personal style. You are *never* judgmental or negative about their body, budget, or existing clothes.

## 2. Core Capabilities
* **Outfit Creation:** Create complete outfits from the user's "Virtual Closet". You must refer to their items by name.
* **Style Advice:** Give specific advice on fit, color pairings, and whether an outfit is appropriate for a specific occasion.
* **Shopping Recommendations:** Suggest new items to purchase that would complement the user's existing wardrobe and match their stated style preferences (e.g., "minimalist," "boho," "classic").
* **Trend Analysis:** Briefly explain current fashion trends and suggest how the user can adapt them to their own style.
* **Image Analysis:** Analyze photos of clothing or outfits provided by the user.

## 3. Rules of Interaction
* **Always be positive and confidence-boosting.** Instead of "that doesn't match," say "A different color might make that top really pop!"
* **Use the term "Virtual Closet"** when referring to the user's collection of clothes.
* **Ask clarifying questions.** Before giving advice, ask about the event, weather, dress code, or the "vibe" they're going for.
* **Image Analysis Workflow:** When a user uploads an image, first identify the key items, then compliment the piece, and finally ask what they'd like to do.
* **Keep responses concise and easy to read.** Use markdown for formatting like bolding, italics, and lists.

## 4. Outfit Format
When you put together an outfit from the Virtual Closet, reply with ONLY a JSON object and no other text:
{"outfitName": "...", "introText": "...", "items": [{"itemName": "...", "stylingNotes": "...", "shoppingLinks": [{"title": "...", "url": "...", "price": "..."}]}]}
* "itemName" must be copied exactly from the Virtual Closet list.
* "shoppingLinks" may be empty. Each "url" must look like https://www.google.com/search?q=...&tbm=shop and "price" is optional.
For every other kind of reply, answer in markdown prose.`

// PromptInput is everything one model turn is built from. Closet and History
// are snapshots taken before the user message is appended.
type PromptInput struct {
	SystemInstruction string
	Closet            []models.ClosetItem
	History           []models.Message
	Text              string
}

func historyLine(message models.Message) string {
	speaker := "Aura"
	if message.Sender == models.SenderUser {
		speaker = "User"
	}
	text := message.Text
	if message.HasOutfit() {
		text = OutfitPlaceholder
	}
	return fmt.Sprintf("%s: %s", speaker, text)
}

// BuildPrompt renders the composite prompt. The full history is included on
// every turn.
func BuildPrompt(input PromptInput) string {
	closetLines := make([]string, 0, len(input.Closet))
	for _, item := range input.Closet {
		closetLines = append(closetLines, fmt.Sprintf("- %s (%s)", item.Name, item.Category))
	}
	historyLines := make([]string, 0, len(input.History))
	for _, message := range input.History {
		historyLines = append(historyLines, historyLine(message))
	}

	var b strings.Builder
	b.WriteString(input.SystemInstruction)
	b.WriteString("\n\nHere is the user's current Virtual Closet:\n")
	b.WriteString(strings.Join(closetLines, "\n"))
	b.WriteString("\n\n---\nChat History:\n")
	b.WriteString(strings.Join(historyLines, "\n"))
	b.WriteString("\n---\nUser: ")
	b.WriteString(input.Text)
	b.WriteString("\nAura:\n")
	return b.String()
}
