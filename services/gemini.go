package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// LLMModelName is the Gemini model used for stylist replies.
type LLMModelName int32

const (
	Flash25 LLMModelName = iota
	Pro25
	FlashLite25
	Flash20
)

// The Stringer interface for LLMModelName.
func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.5-flash"
	}
}

// ParseLLMModelName accepts the model id as written in configuration.
func ParseLLMModelName(name string) (LLMModelName, error) {
	for _, m := range []LLMModelName{Flash25, Pro25, FlashLite25, Flash20} {
		if m.String() == name {
			return m, nil
		}
	}
	return Flash25, fmt.Errorf("unsupported gemini model %q", name)
}

type GoogleStylistLLM struct {
	client    *genai.Client
	modelName LLMModelName
}

func NewGoogleStylistLLM(ctx context.Context, apiKey string, modelName LLMModelName) (*GoogleStylistLLM, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GoogleStylistLLM{client: client, modelName: modelName}, nil
}

func (g *GoogleStylistLLM) Provider() string {
	return "gemini"
}

func (g *GoogleStylistLLM) Generate(ctx context.Context, prompt string, image *InlineImage) (*LLMResponse, error) {
	// [Image, Text] when an image is attached, text only otherwise
	var parts []*genai.Part
	if image != nil && len(image.Data) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: image.MIMEType,
				Data:     image.Data,
			},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	result, err := g.client.Models.GenerateContent(ctx, g.modelName.String(), []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		CandidateCount: 1,
		Temperature:    floatPointer(1),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("content violation: %s %s", result.PromptFeedback.BlockReason, result.PromptFeedback.BlockReasonMessage)
	}
	if err := checkSafetyRatings(result); err != nil {
		return nil, err
	}

	response := &LLMResponse{
		Response: result.Text(),
		Model:    g.modelName.String(),
	}
	if result.UsageMetadata != nil {
		response.InputTokenCount = result.UsageMetadata.PromptTokenCount
		response.ThoughtsTokenCount = result.UsageMetadata.ThoughtsTokenCount
		response.OutputTokenCount = result.UsageMetadata.CandidatesTokenCount
		response.TotalTokenCount = result.UsageMetadata.TotalTokenCount
	}
	log.Ctx(ctx).Debug().
		Str("model", response.Model).
		Int32("input_tokens", response.InputTokenCount).
		Int32("output_tokens", response.OutputTokenCount).
		Int32("total_tokens", response.TotalTokenCount).
		Msg("gemini reply received")
	return response, nil
}

func checkSafetyRatings(result *genai.GenerateContentResponse) error {
	for _, c := range result.Candidates {
		for _, rating := range c.SafetyRatings {
			if rating.Blocked {
				return fmt.Errorf("content blocked by safety setting: %s", rating.Category)
			}
		}
	}
	return nil
}
