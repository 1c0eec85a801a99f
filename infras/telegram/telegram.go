package telegram

//go:generate go run go.uber.org/mock/mockgen -source=./telegram.go -destination=./mocks/telegram_mock.go -package=mocks

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"lakeside/config"
	"lakeside/infras/otel"
	"lakeside/shared/constant"
)

// Notifier delivers operational notifications to the staff chat.
type Notifier interface {
	SendHTML(ctx context.Context, text string) error
}

type telegramImpl struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	otel   otel.Otel
}

// New creates a Telegram notifier. When the bot token is empty the
// notifier is disabled and every send becomes a logged no-op.
func New(config *config.Config, otl otel.Otel) Notifier {
	token := config.External.Telegram.BotToken
	if token == "" {
		log.Warn().Msg("Telegram bot token is empty, notifications disabled")

		return &noopNotifier{}
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Telegram bot, notifications disabled")

		return &noopNotifier{}
	}

	log.Info().Str("username", bot.Self.UserName).Msg("Connected to Telegram")

	return &telegramImpl{
		bot:    bot,
		chatID: config.External.Telegram.ChatID,
		otel:   otl,
	}
}

func (t *telegramImpl) SendHTML(ctx context.Context, text string) (err error) {
	_, scope := t.otel.NewScope(ctx, constant.OtelTelegramScopeName, constant.OtelTelegramScopeName+".SendHTML")
	defer scope.End()
	defer scope.TraceIfError(err)

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err = t.bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send Telegram notification")

		return fmt.Errorf("failed to send telegram notification: %w", err)
	}

	return nil
}

type noopNotifier struct{}

func (n *noopNotifier) SendHTML(_ context.Context, text string) error {
	log.Debug().Str("text", text).Msg("Telegram notifier disabled, dropping notification")

	return nil
}
