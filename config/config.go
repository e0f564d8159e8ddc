package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	// HTTP listen address, e.g. ":8083"
	Address string `env:"ADDRESS" envDefault:":8083"`
	Env     string `env:"ENV" envDefault:"local"`

	SentryDSN string `env:"SENTRY_DSN"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"local-dev-secret"`

	LLMProvider   string `env:"LLM_PROVIDER" envDefault:"gemini"`
	GoogleAPIKey  string `env:"GOOGLE_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// in-memory only, nothing survives a restart
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"file:aura?mode=memory&cache=shared"`

	SeedDemoCloset    bool    `env:"SEED_DEMO_CLOSET" envDefault:"false"`
	MaxImageDimension int     `env:"MAX_IMAGE_DIMENSION" envDefault:"1024"`
	RateLimit         float64 `env:"RATE_LIMIT" envDefault:"3"`

	TelegramBot   bool   `env:"TELEGRAM_BOT" envDefault:"false"`
	TelegramToken string `env:"TG_TOKEN"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY environment variable not set")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.TelegramBot && c.TelegramToken == "" {
		return fmt.Errorf("TG_TOKEN environment variable not set while TELEGRAM_BOT is enabled")
	}
	if c.MaxImageDimension <= 0 {
		return fmt.Errorf("MAX_IMAGE_DIMENSION must be positive, got %d", c.MaxImageDimension)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
