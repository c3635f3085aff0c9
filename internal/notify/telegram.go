// internal/notify/telegram.go
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/user/codewatch/internal/types"
)

const maxTelegramMessage = 4096

// Telegram delivers session notifications to a fixed chat. It is send-only:
// user input reaches the agent through the host UI, not through this channel.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier for the given bot token and chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Handler returns the delivery handler for registry registration.
func (t *Telegram) Handler() Handler {
	return func(_ types.Session, message string) error {
		return t.send(message)
	}
}

// send splits long notifications into Telegram-sized chunks.
func (t *Telegram) send(message string) error {
	for len(message) > 0 {
		chunk := message
		if len(chunk) > maxTelegramMessage {
			chunk = chunk[:maxTelegramMessage]
		}
		message = message[len(chunk):]

		msg := tgbotapi.NewMessage(t.chatID, chunk)
		if _, err := t.bot.Send(msg); err != nil {
			return fmt.Errorf("send telegram message: %w", err)
		}
	}
	return nil
}
