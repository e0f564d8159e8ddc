package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aurastylist/config"
	"aurastylist/controllers"
	"aurastylist/dbhelper"
	"aurastylist/logging"
	"aurastylist/services"
	"aurastylist/telegram"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func newStylistLLM(ctx context.Context, cfg config.Config) (services.StylistLLM, error) {
	if cfg.LLMProvider == config.ProviderOpenAI {
		return services.NewOpenAIStylistLLM(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	}
	modelName, err := services.ParseLLMModelName(cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	return services.NewGoogleStylistLLM(ctx, cfg.GoogleAPIKey, modelName)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.IsProduction())

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		Release:          "aurastylist@1.0.0",
		Debug:            false,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sentry.Init")
	}
	defer sentry.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbhelper.SetupDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}
	llm, err := newStylistLLM(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.LLMProvider).Msg("model client setup failed")
	}
	images, err := services.NewImageCacheService(db)
	if err != nil {
		log.Fatal().Err(err).Msg("image cache setup failed")
	}

	e := controllers.SetupServer(db, llm, images, controllers.ServerOptions{
		JWTSecret:         cfg.JWTSecret,
		SeedDemoCloset:    cfg.SeedDemoCloset,
		MaxImageDimension: cfg.MaxImageDimension,
	})
	e.HideBanner = true
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	if cfg.TelegramBot {
		closet := &services.ClosetStore{DB: db}
		conversation := &services.ConversationStore{DB: db}
		sessions := &services.SessionService{DB: db, Closet: closet, Conversation: conversation, SeedDemoCloset: cfg.SeedDemoCloset}
		bot := &telegram.StylistBot{
			Sessions: sessions,
			Closet:   closet,
			Chat: &services.ChatService{
				Sessions:          sessions,
				Closet:            closet,
				Conversation:      conversation,
				Images:            images,
				LLM:               llm,
				MaxImageDimension: cfg.MaxImageDimension,
			},
			Outfits:           &services.OutfitStore{DB: db, Closet: closet, Conversation: conversation},
			Images:            images,
			MaxImageDimension: cfg.MaxImageDimension,
		}
		go func() {
			if err := telegram.RunStylistBot(ctx, cfg.TelegramToken, bot); err != nil {
				log.Error().Err(err).Msg("telegram bot stopped")
				sentry.CaptureException(err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("address", cfg.Address).Str("provider", llm.Provider()).Msg("aura stylist listening")
	if err := e.Start(cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
