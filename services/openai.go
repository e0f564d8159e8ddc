package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIStylistLLM talks to any OpenAI-compatible chat completions endpoint.
type OpenAIStylistLLM struct {
	client openai.Client
	model  string
}

func NewOpenAIStylistLLM(key string, url string, model string) *OpenAIStylistLLM {
	client := openai.NewClient(option.WithAPIKey(key), option.WithBaseURL(url))
	return &OpenAIStylistLLM{client: client, model: model}
}

func (c *OpenAIStylistLLM) Provider() string {
	return "openai"
}

func (c *OpenAIStylistLLM) makePromptParams(prompt string, image *InlineImage) openai.ChatCompletionNewParams {
	parts := []openai.ChatCompletionContentPartUnionParam{
		{OfText: &openai.ChatCompletionContentPartTextParam{
			Text: prompt,
		}},
	}
	if image != nil && len(image.Data) > 0 {
		parts = append(parts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL(image),
					Detail: "auto",
				},
			},
		})
	}
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: parts,
					},
				},
			},
		},
	}
}

func (c *OpenAIStylistLLM) Generate(ctx context.Context, prompt string, image *InlineImage) (*LLMResponse, error) {
	response, err := c.client.Chat.Completions.New(ctx, c.makePromptParams(prompt, image))
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	return &LLMResponse{
		Response:         response.Choices[0].Message.Content,
		Model:            response.Model,
		InputTokenCount:  int32(response.Usage.PromptTokens),
		OutputTokenCount: int32(response.Usage.CompletionTokens),
		TotalTokenCount:  int32(response.Usage.TotalTokens),
	}, nil
}

func dataURL(image *InlineImage) string {
	return fmt.Sprintf("data:%s;base64,%s", image.MIMEType, base64.StdEncoding.EncodeToString(image.Data))
}
