package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aurastylist/metrics"
	"aurastylist/models"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
)

const (
	FallbackText        = "I'm having a little trouble thinking right now. Please try again in a moment."
	EmptyClosetReminder = "Your Virtual Closet is empty! Add a few of your favourite pieces first so I can style outfits from what you already own, or send me a photo of something you'd like to talk about."
)

type SendInput struct {
	Text  string
	Image []byte
}

// SendResult carries the messages a send appended, in order, and the session
// state afterwards.
type SendResult struct {
	State    models.SessionState `json:"state"`
	Messages []models.Message    `json:"messages"`
}

// ChatService drives one conversation turn: idle -> awaiting_response -> idle.
type ChatService struct {
	Sessions          *SessionService
	Closet            *ClosetStore
	Conversation      *ConversationStore
	Images            ImageCacheServiceProvider
	LLM               StylistLLM
	MaxImageDimension int
}

func (s *ChatService) Send(ctx context.Context, sessionID string, input SendInput) (*SendResult, error) {
	logger := log.Ctx(ctx).With().Str("session_id", sessionID).Logger()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == models.SessionAwaitingResponse {
		metrics.RejectedSendsTotal.WithLabelValues("awaiting_response").Inc()
		return nil, ErrAwaitingResponse
	}

	closet, err := s.Closet.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	hasImage := len(input.Image) > 0
	if len(closet) == 0 && !hasImage {
		metrics.RejectedSendsTotal.WithLabelValues("empty_closet").Inc()
		reminder, err := s.Conversation.Append(ctx, sessionID, models.Message{
			Sender: models.SenderAssistant,
			Text:   EmptyClosetReminder,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("send rejected, closet is empty")
		return &SendResult{State: models.SessionIdle, Messages: []models.Message{*reminder}}, nil
	}
	if strings.TrimSpace(input.Text) == "" && !hasImage {
		metrics.RejectedSendsTotal.WithLabelValues("empty_message").Inc()
		return nil, ErrEmptyMessage
	}

	var image *InlineImage
	if hasImage {
		image, err = PrepareImage(input.Image, s.MaxImageDimension)
		if err != nil {
			metrics.RejectedSendsTotal.WithLabelValues("invalid_image").Inc()
			return nil, err
		}
	}

	if err := s.Sessions.BeginAwaiting(ctx, sessionID); err != nil {
		if errors.Is(err, ErrAwaitingResponse) {
			metrics.RejectedSendsTotal.WithLabelValues("awaiting_response").Inc()
		}
		return nil, err
	}
	// the transition back to idle must happen even if the caller went away
	defer func() {
		if err := s.Sessions.FinishAwaiting(context.WithoutCancel(ctx), sessionID); err != nil {
			logger.Error().Err(err).Msg("could not return session to idle")
			sentry.CaptureException(err)
		}
	}()

	history, err := s.Conversation.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	userMessage := models.Message{Sender: models.SenderUser, Text: input.Text}
	if image != nil {
		key, err := s.Images.Save(ctx, sessionID, image)
		if err != nil {
			return nil, err
		}
		ref := models.ImageReference(key)
		userMessage.Image = &ref
	}
	stored, err := s.Conversation.Append(ctx, sessionID, userMessage)
	if err != nil {
		return nil, err
	}
	result := &SendResult{State: models.SessionIdle, Messages: []models.Message{*stored}}

	prompt := BuildPrompt(PromptInput{
		SystemInstruction: AuraSystemInstruction,
		Closet:            closet,
		History:           history,
		Text:              input.Text,
	})

	reply := s.generate(context.WithoutCancel(ctx), sessionID, prompt, image)
	assistant := models.Message{Sender: models.SenderAssistant, Text: reply.Text, Outfit: reply.Outfit}
	stored, err = s.Conversation.Append(context.WithoutCancel(ctx), sessionID, assistant)
	if err != nil {
		return nil, err
	}
	result.Messages = append(result.Messages, *stored)
	return result, nil
}

// generate calls the model and classifies its answer. A failed call becomes
// the fallback text reply.
func (s *ChatService) generate(ctx context.Context, sessionID string, prompt string, image *InlineImage) Reply {
	logger := log.Ctx(ctx).With().Str("session_id", sessionID).Str("provider", s.LLM.Provider()).Logger()

	start := time.Now()
	response, err := s.LLM.Generate(ctx, prompt, image)
	metrics.ModelCallDuration.WithLabelValues(s.LLM.Provider()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelCallsTotal.WithLabelValues(s.LLM.Provider(), "error").Inc()
		metrics.RepliesTotal.WithLabelValues("fallback").Inc()
		logger.Error().Err(err).Msg("model call failed")
		sentry.CaptureException(fmt.Errorf("[Session: %s] model call failed: %w", sessionID, err))
		return Reply{Kind: ReplyText, Text: FallbackText}
	}
	metrics.ModelCallsTotal.WithLabelValues(s.LLM.Provider(), "ok").Inc()

	reply := ParseReply(response.Response)
	metrics.RepliesTotal.WithLabelValues(string(reply.Kind)).Inc()
	logger.Info().
		Str("kind", string(reply.Kind)).
		Str("model", response.Model).
		Int32("input_tokens", response.InputTokenCount).
		Int32("output_tokens", response.OutputTokenCount).
		Msg("model replied")
	return reply
}
