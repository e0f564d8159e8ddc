package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aurastylist/models"
	"aurastylist/services"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

func EscapeMessage(message string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return r.Replace(message)
}

// Reply is one outgoing chat message. Markdown replies use Telegram's legacy
// Markdown mode and must already be escaped.
type Reply struct {
	Text     string
	Markdown bool
}

func FormatOutfit(outfit models.GeneratedOutfit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n%s\n", EscapeMessage(outfit.OutfitName), EscapeMessage(outfit.IntroText))
	for _, item := range outfit.Items {
		fmt.Fprintf(&b, "\n• *%s*", EscapeMessage(item.ItemName))
		if item.StylingNotes != "" {
			fmt.Fprintf(&b, ": %s", EscapeMessage(item.StylingNotes))
		}
		for _, link := range item.ShoppingLinks {
			if link.URL == "" {
				continue
			}
			title := EscapeMessage(link.Title)
			if link.Price != nil && *link.Price != "" {
				title = fmt.Sprintf("%s (%s)", title, EscapeMessage(*link.Price))
			}
			fmt.Fprintf(&b, "\n   🛍 %s: %s", title, EscapeMessage(link.URL))
		}
	}
	b.WriteString("\n\nSend /save to keep this outfit.")
	return b.String()
}

func formatMessage(message models.Message) Reply {
	if message.Outfit != nil {
		return Reply{Text: FormatOutfit(*message.Outfit), Markdown: true}
	}
	return Reply{Text: message.Text}
}

func formatCloset(items []models.ClosetItem) string {
	if len(items) == 0 {
		return "Your Virtual Closet is empty. Send a photo with the caption `/add Tops White Tee` to add an item."
	}
	var b strings.Builder
	b.WriteString("*Your Virtual Closet*\n")
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %s (%s)", EscapeMessage(item.Name), item.Category)
	}
	return b.String()
}

const addUsage = "Send a photo with the caption `/add <Category> <name>`, e.g. `/add Outerwear Tan Trench Coat`."

// StylistBot maps Telegram chats onto stylist sessions.
type StylistBot struct {
	Sessions          *services.SessionService
	Closet            *services.ClosetStore
	Chat              *services.ChatService
	Outfits           *services.OutfitStore
	Images            services.ImageCacheServiceProvider
	MaxImageDimension int
	// FetchPhoto downloads a Telegram file by id.
	FetchPhoto func(ctx context.Context, fileID string) ([]byte, error)
}

// Incoming is the part of a Telegram message the bot reacts to.
type Incoming struct {
	ChatID      int64
	Command     string
	CommandArgs string
	Text        string
	PhotoFileID string
}

func incomingFromMessage(message *tgbotapi.Message) Incoming {
	in := Incoming{ChatID: message.Chat.ID, Text: message.Text}
	if message.IsCommand() {
		in.Command = message.Command()
		in.CommandArgs = message.CommandArguments()
		in.Text = ""
	}
	if len(message.Photo) > 0 {
		// sizes are ordered smallest first
		in.PhotoFileID = message.Photo[len(message.Photo)-1].FileID
		in.Text = message.Caption
		if strings.HasPrefix(message.Caption, "/add") {
			in.Command = "add"
			in.CommandArgs = strings.TrimSpace(strings.TrimPrefix(message.Caption, "/add"))
			in.Text = ""
		}
	}
	return in
}

func (bot *StylistBot) Handle(ctx context.Context, in Incoming) ([]Reply, error) {
	session, err := bot.Sessions.GetOrCreateForTelegram(ctx, in.ChatID)
	if err != nil {
		return nil, err
	}
	logger := log.Ctx(ctx).With().Int64("chat_id", in.ChatID).Str("session_id", session.ID).Logger()
	ctx = logger.WithContext(ctx)

	switch in.Command {
	case "start":
		return []Reply{{Text: services.GreetingText}}, nil
	case "closet":
		items, err := bot.Closet.List(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		return []Reply{{Text: formatCloset(items), Markdown: true}}, nil
	case "add":
		return bot.addItem(ctx, session.ID, in)
	case "save":
		return bot.saveLatest(ctx, session.ID)
	case "":
	default:
		return []Reply{{Text: "Sorry, I don't know that command. Try /closet, /add or /save."}}, nil
	}

	input := services.SendInput{Text: in.Text}
	if in.PhotoFileID != "" {
		data, err := bot.FetchPhoto(ctx, in.PhotoFileID)
		if err != nil {
			return nil, fmt.Errorf("download photo: %w", err)
		}
		input.Image = data
	}
	result, err := bot.Chat.Send(ctx, session.ID, input)
	switch {
	case errors.Is(err, services.ErrAwaitingResponse):
		return []Reply{{Text: "One moment, I'm still thinking about your last message!"}}, nil
	case errors.Is(err, services.ErrEmptyMessage):
		return []Reply{{Text: "Send me a message or a photo and let's get styling."}}, nil
	case errors.Is(err, services.ErrInvalidImage):
		return []Reply{{Text: "I couldn't open that picture, could you try another one?"}}, nil
	case err != nil:
		return nil, err
	}

	replies := []Reply{}
	for _, message := range result.Messages {
		if message.Sender == models.SenderAssistant {
			replies = append(replies, formatMessage(message))
		}
	}
	return replies, nil
}

func (bot *StylistBot) addItem(ctx context.Context, sessionID string, in Incoming) ([]Reply, error) {
	categoryRaw, name, _ := strings.Cut(in.CommandArgs, " ")
	name = strings.TrimSpace(name)
	category := models.NormalizeCategory(categoryRaw)
	if in.PhotoFileID == "" || name == "" || !category.IsValid() {
		return []Reply{{Text: addUsage, Markdown: true}}, nil
	}
	data, err := bot.FetchPhoto(ctx, in.PhotoFileID)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	image, err := services.PrepareImage(data, bot.MaxImageDimension)
	if err != nil {
		return []Reply{{Text: "I couldn't open that picture, could you try another one?"}}, nil
	}
	key, err := bot.Images.Save(ctx, sessionID, image)
	if err != nil {
		return nil, err
	}
	item, err := bot.Closet.Add(ctx, sessionID, name, category, models.ImageReference(key))
	if err != nil {
		return nil, err
	}
	return []Reply{{Text: fmt.Sprintf("Added *%s* to your %s. Gorgeous!", EscapeMessage(item.Name), item.Category), Markdown: true}}, nil
}

func (bot *StylistBot) saveLatest(ctx context.Context, sessionID string) ([]Reply, error) {
	message, err := bot.Chat.Conversation.LatestOutfit(ctx, sessionID)
	if errors.Is(err, services.ErrNotFound) {
		return []Reply{{Text: "There's no outfit to save yet. Ask me to put one together!"}}, nil
	}
	if err != nil {
		return nil, err
	}
	result, saved, err := bot.Outfits.SaveFromMessage(ctx, sessionID, message.ID)
	if err != nil {
		return nil, err
	}
	switch result {
	case services.SaveResultDuplicateName:
		return []Reply{{Text: fmt.Sprintf("You already saved *%s*.", EscapeMessage(message.Outfit.OutfitName)), Markdown: true}}, nil
	case services.SaveResultNoResolvableItems:
		return []Reply{{Text: "None of those pieces are in your Virtual Closet anymore, so there was nothing to save."}}, nil
	}
	return []Reply{{Text: fmt.Sprintf("Saved *%s* to your outfits.", EscapeMessage(saved.Name)), Markdown: true}}, nil
}

// RunStylistBot long-polls Telegram until ctx is done.
func RunStylistBot(ctx context.Context, token string, bot *StylistBot) error {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("telegram bot init: %w", err)
	}
	log.Info().Str("account", api.Self.UserName).Msg("telegram bot authorized")

	if bot.FetchPhoto == nil {
		bot.FetchPhoto = func(ctx context.Context, fileID string) ([]byte, error) {
			url, err := api.GetFileDirectURL(fileID)
			if err != nil {
				return nil, err
			}
			return services.ReadFileFromUrl(ctx, url)
		}
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			// chats are served concurrently
			go bot.serve(ctx, api, update.Message)
		}
	}
}

func (bot *StylistBot) serve(ctx context.Context, api *tgbotapi.BotAPI, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if _, err := api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Ctx(ctx).Debug().Err(err).Int64("chat_id", chatID).Msg("telegram chat action failed")
	}

	replies, err := bot.Handle(ctx, incomingFromMessage(message))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("telegram update failed")
		sentry.CaptureException(fmt.Errorf("[Telegram chat: %d] %w", chatID, err))
		replies = []Reply{{Text: services.FallbackText}}
	}
	for _, reply := range replies {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		if reply.Markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		if _, err := api.Send(msg); err != nil {
			log.Ctx(ctx).Warn().Err(err).Int64("chat_id", chatID).Msg("telegram send failed")
		}
	}
}
