package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	TelegramToken      string        `env:"BOT_TOKEN,required"`
	TelegramDebug      bool          `env:"BOT_DEBUG" envDefault:"false"`
	WebhookURL         string        `env:"WEBHOOK_URL"`
	SubmitTimeout      time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"10s"`
	CatalogPath        string        `env:"CATALOG_PATH" envDefault:"catalog.json"`
	CatalogDescription string        `env:"CATALOG_DESCRIPTION" envDefault:"Це наш каталог ротангу"`
	ContactsText       string        `env:"CONTACTS_TEXT" envDefault:"Наші контакти:\nТелефон: +380123456789\nEmail: example@example.com\nАдреса: м. Харків, вул. Ремонтна, 7"`
	SessionBackend     string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`
	DatabaseDSN        string        `env:"DATABASE_DSN"`
	AdminChatIDs       []int64       `env:"ADMIN_CHAT_IDS" envSeparator:","`
	MaxActiveChats     int           `env:"MAX_ACTIVE_CHATS" envDefault:"256"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	StartupTimeout     time.Duration `env:"STARTUP_TIMEOUT" envDefault:"30s"`
}

func Load() (*Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}

	if c.MaxActiveChats < 1 {
		return fmt.Errorf("MAX_ACTIVE_CHATS must be positive, got %d", c.MaxActiveChats)
	}
	if c.SubmitTimeout <= 0 {
		return fmt.Errorf("SUBMIT_TIMEOUT must be positive, got %s", c.SubmitTimeout)
	}
	return nil
}

// HasSink reports whether confirmed orders are recorded anywhere.
func (c *Config) HasSink() bool {
	return c.WebhookURL != "" || c.DatabaseDSN != ""
}
