package services

import (
	"context"
)

// InlineImage is an image sent to the model next to the prompt text.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

type LLMResponse struct {
	Response           string `json:"response"`
	Model              string `json:"model"`
	InputTokenCount    int32  `json:"input_token_count"`
	ThoughtsTokenCount int32  `json:"thoughts_token_count"`
	OutputTokenCount   int32  `json:"output_token_count"`
	TotalTokenCount    int32  `json:"total_token_count"`
}

// StylistLLM is the remote model call: one composite prompt plus an optional
// image in, one reply text out.
type StylistLLM interface {
	Generate(ctx context.Context, prompt string, image *InlineImage) (*LLMResponse, error)
	Provider() string
}

func floatPointer(f float32) *float32 {
	return &f
}
