package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/deal"
)

// Telegram publishes deals to one channel. Photo delivery falls back to a
// plain text message when Telegram rejects the image; only when both fail
// is the publication reported as failed.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

func NewTelegram(token string, chatID int64, logger zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, logger: logger}, nil
}

// Publish delivers the chosen product. A false result with nil error is a
// soft failure the caller must not commit.
func (t *Telegram) Publish(ctx context.Context, p deal.Product, cat catalog.Category) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	caption := FormatMessage(p, cat)

	if p.ImageURL != "" {
		photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FileURL(p.ImageURL))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		_, err := t.api.Send(photo)
		if err == nil {
			t.logger.Info().Str("asin", p.ASIN).Msg("published with photo")
			return true, nil
		}
		t.logger.Warn().Err(err).Msg("photo delivery failed, retrying as text")
	}

	msg := tgbotapi.NewMessage(t.chatID, caption)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = false
	if _, err := t.api.Send(msg); err != nil {
		t.logger.Error().Err(err).Str("asin", p.ASIN).Msg("text delivery failed")
		return false, nil
	}

	t.logger.Info().Str("asin", p.ASIN).Msg("published as text")
	return true, nil
}
