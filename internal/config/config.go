package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" default:"0"`

	// Dev channel used instead of the production one in dev mode.
	DevTelegramBotToken string `envconfig:"DEV_TELEGRAM_BOT_TOKEN" default:""`
	DevTelegramChatID   int64  `envconfig:"DEV_TELEGRAM_CHAT_ID" default:"0"`

	HistoryFile        string `envconfig:"HISTORY_FILE" default:"posted_deals.json"`
	HistoryWindowHours int    `envconfig:"HISTORY_WINDOW_HOURS" default:"48"`

	// CatalogFile optionally replaces the built-in category catalog.
	CatalogFile string `envconfig:"CATALOG_FILE" default:""`

	AmazonBaseURL string `envconfig:"AMAZON_BASE_URL" default:"https://www.amazon.es"`
	AffiliateTag  string `envconfig:"AFFILIATE_TAG" default:""`

	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.5"`

	// ArchiveDSN, when set, enables the Postgres publication archive.
	ArchiveDSN string `envconfig:"ARCHIVE_DSN" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HistoryWindowHours < 1 {
		return fmt.Errorf("HISTORY_WINDOW_HOURS must be >= 1")
	}
	if strings.TrimSpace(c.HistoryFile) == "" {
		return fmt.Errorf("HISTORY_FILE is required")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in (0, 1]")
	}
	return nil
}

// Credentials returns the bot token and chat for the requested mode. Dev
// mode requires an explicit dev pair so test runs can never post to the
// production channel.
func (c *Config) Credentials(dev bool) (string, int64, error) {
	token, chatID := c.TelegramBotToken, c.TelegramChatID
	if dev {
		if c.DevTelegramBotToken == "" || c.DevTelegramChatID == 0 {
			return "", 0, fmt.Errorf("dev mode requires DEV_TELEGRAM_BOT_TOKEN and DEV_TELEGRAM_CHAT_ID")
		}
		token, chatID = c.DevTelegramBotToken, c.DevTelegramChatID
	}
	if token == "" || chatID == 0 {
		return "", 0, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
	}
	return token, chatID, nil
}

// HistoryWindow returns the recency window as a duration.
func (c *Config) HistoryWindow() time.Duration {
	return time.Duration(c.HistoryWindowHours) * time.Hour
}
