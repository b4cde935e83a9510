// internal/infra/telegram/client.go
package telegram

import (
	"context"

	domainTelegram "github.com/andrey-praktikum-98/homework-bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain telegram.Client interface using the
// gopkg.in/telebot.v3 library. Every message goes to the one chat
// configured at startup.
type TelebotAdapter struct {
	bot    *telebot.Bot
	chatID int64
}

func NewTelebotAdapter(b *telebot.Bot, chatID int64) *TelebotAdapter {
	return &TelebotAdapter{bot: b, chatID: chatID}
}

var _ domainTelegram.Client = (*TelebotAdapter)(nil)

// SendMessage sends a plain-text message to the configured chat. telebot
// does not take a context; ctx is part of the domain contract so other
// transports can honor it.
func (tba *TelebotAdapter) SendMessage(_ context.Context, text string) error {
	_, err := tba.bot.Send(telebot.ChatID(tba.chatID), text)
	return err
}
