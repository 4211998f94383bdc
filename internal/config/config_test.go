package config

import (
	"testing"
	"time"
)

func baseConfig() *Config {
	return &Config{
		Environment:         "local",
		LogLevel:            "info",
		TelegramBotToken:    "prod-token",
		TelegramChatID:      -100,
		HistoryFile:         "posted_deals.json",
		HistoryWindowHours:  48,
		SimilarityThreshold: 0.5,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := baseConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := baseConfig()
	cfg.HistoryWindowHours = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero history window must fail validation")
	}

	cfg = baseConfig()
	cfg.HistoryFile = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("blank history file must fail validation")
	}

	cfg = baseConfig()
	cfg.SimilarityThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatalf("threshold above 1 must fail validation")
	}
}

func TestCredentialsProduction(t *testing.T) {
	t.Parallel()

	token, chatID, err := baseConfig().Credentials(false)
	if err != nil {
		t.Fatalf("credentials failed: %v", err)
	}
	if token != "prod-token" || chatID != -100 {
		t.Fatalf("got %q %d, want the production pair", token, chatID)
	}

	cfg := baseConfig()
	cfg.TelegramBotToken = ""
	if _, _, err := cfg.Credentials(false); err == nil {
		t.Fatalf("missing production token must fail")
	}
}

func TestCredentialsDevRequiresDevPair(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	if _, _, err := cfg.Credentials(true); err == nil {
		t.Fatalf("dev mode without a dev pair must fail, never post to production")
	}

	cfg.DevTelegramBotToken = "dev-token"
	cfg.DevTelegramChatID = -200
	token, chatID, err := cfg.Credentials(true)
	if err != nil {
		t.Fatalf("credentials failed: %v", err)
	}
	if token != "dev-token" || chatID != -200 {
		t.Fatalf("got %q %d, want the dev pair", token, chatID)
	}
}

func TestHistoryWindow(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	if got := cfg.HistoryWindow(); got != 48*time.Hour {
		t.Fatalf("HistoryWindow = %v, want 48h", got)
	}
}
