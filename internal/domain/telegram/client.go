package telegram

import "context"

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot
// library. The destination chat is fixed at construction time, so the one
// capability the application needs is sending plain text.
type Client interface {
	SendMessage(ctx context.Context, text string) error
}
