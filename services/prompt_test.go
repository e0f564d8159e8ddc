package services

import (
	"strings"
	"testing"

	"aurastylist/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		SystemInstruction: "You are Aura.",
		Closet: []models.ClosetItem{
			{ID: 3, Name: "Tan Trench Coat", Category: models.CategoryOuterwear},
			{ID: 2, Name: "Striped T-Shirt", Category: models.CategoryTops},
		},
		History: []models.Message{
			{Sender: models.SenderAssistant, Text: "Hello! I'm Aura."},
			{Sender: models.SenderUser, Text: "Dress me for work"},
			{Sender: models.SenderAssistant, Text: "Office Chic", Outfit: &models.GeneratedOutfit{OutfitName: "Office Chic"}},
		},
		Text: "Something warmer?",
	})

	expected := "You are Aura.\n\n" +
		"Here is the user's current Virtual Closet:\n" +
		"- Tan Trench Coat (Outerwear)\n" +
		"- Striped T-Shirt (Tops)\n\n" +
		"---\nChat History:\n" +
		"Aura: Hello! I'm Aura.\n" +
		"User: Dress me for work\n" +
		"Aura: [Suggested an outfit from the Virtual Closet]\n" +
		"---\nUser: Something warmer?\nAura:\n"
	assert.Equal(t, expected, prompt)
}

func TestBuildPromptDoesNotTruncateHistory(t *testing.T) {
	history := make([]models.Message, 0, 500)
	for i := 0; i < 500; i++ {
		history = append(history, models.Message{Sender: models.SenderUser, Text: "again"})
	}
	prompt := BuildPrompt(PromptInput{SystemInstruction: AuraSystemInstruction, History: history, Text: "last"})
	assert.Equal(t, 500, strings.Count(prompt, "User: again\n"))
	assert.True(t, strings.HasPrefix(prompt, AuraSystemInstruction))
}
