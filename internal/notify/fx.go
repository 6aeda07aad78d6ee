package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// New returns the Telegram notifier when a token and channel are configured
// and Noop otherwise.
func New(opts Opts) (Notifier, error) {
	cfg := opts.Config.Telegram
	if cfg.Token == "" || cfg.Channel == "" {
		opts.Logger.Info("Telegram notifications disabled")
		return Noop{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return NewTelegram(bot, cfg.Channel, opts.Logger), nil
}

var Module = fx.Module("notify", fx.Provide(New))
