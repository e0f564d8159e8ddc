package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLLMModelName(t *testing.T) {
	model, err := ParseLLMModelName("gemini-2.5-flash")
	require.NoError(t, err)
	assert.Equal(t, Flash25, model)

	model, err = ParseLLMModelName("gemini-2.5-pro")
	require.NoError(t, err)
	assert.Equal(t, Pro25, model)

	_, err = ParseLLMModelName("gpt-4o")
	assert.Error(t, err)
}

func TestOpenAIPromptParams(t *testing.T) {
	llm := NewOpenAIStylistLLM("key", "https://example.com/v1", "gpt-4o-mini")

	params := llm.makePromptParams("Hello Aura", nil)
	require.Len(t, params.Messages, 1)
	parts := params.Messages[0].OfUser.Content.OfArrayOfContentParts
	require.Len(t, parts, 1)
	assert.Equal(t, "Hello Aura", parts[0].OfText.Text)

	params = llm.makePromptParams("Look", &InlineImage{MIMEType: "image/png", Data: []byte{1, 2, 3}})
	parts = params.Messages[0].OfUser.Content.OfArrayOfContentParts
	require.Len(t, parts, 2)
	url := parts[1].OfImageURL.ImageURL.URL
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	assert.Equal(t, "data:image/png;base64,AQID", url)
}
