// Package notify announces catalog additions outside the web UI.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/models"
)

type Notifier interface {
	VideoAdded(ctx context.Context, v models.Video) error
}

type Noop struct{}

func (Noop) VideoAdded(context.Context, models.Video) error { return nil }

// Sender is the part of *tgbotapi.BotAPI the Telegram notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts every added video to a channel.
type Telegram struct {
	bot     Sender
	channel string
	logger  logger.Logger
}

var _ Notifier = (*Telegram)(nil)

func NewTelegram(bot Sender, channel string, log logger.Logger) *Telegram {
	return &Telegram{
		bot:     bot,
		channel: channel,
		logger:  log.WithComponent("TelegramNotifier"),
	}
}

func (t *Telegram) VideoAdded(ctx context.Context, v models.Video) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessageToChannel(t.channel, Message(v))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to post to %s: %w", t.channel, err)
	}

	t.logger.Debug("Posted video", "channel", t.channel, "id", v.ID, "date", v.Date)
	return nil
}

// Message is the text posted for v.
func Message(v models.Video) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%s, recommended by %s)", v.Name, v.URL, v.Category, v.RecommendedBy)
	if v.Comment != "" {
		fmt.Fprintf(&b, "\n%s", v.Comment)
	}
	return b.String()
}
