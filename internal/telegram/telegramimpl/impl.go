package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orwa-kh/syria-post-watch/internal/telegram"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) (*TelegramImpl, error) {
	if opts.Config.Telegram.Token == "" {
		opts.Logger.Warn("Telegram token not configured, notifications disabled")
		return &TelegramImpl{
			Logger: opts.Logger,
			Config: opts.Config,
		}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "Error", err)
		return nil, err
	}

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: opts.Logger,
		Config: opts.Config,
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

// SendMessageToUser sends a MarkdownV2 message to the configured admin user.
// Callers escape interpolated values with formatter.EscapeMarkdownV2.
func (tg *TelegramImpl) SendMessageToUser(message string) {
	if tg.TgBot == nil {
		return
	}

	msg := tgbotapi.NewMessage(tg.Config.Telegram.User, message)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message to user",
			"userID", tg.Config.Telegram.User,
			"error", err)
		return
	}

	tg.Logger.Info("Message sent to user",
		"userID", tg.Config.Telegram.User)
}
