// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrey-praktikum-98/homework-bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	refusalReply = "Этот бот следит за чужой домашней работой. Для вас у него команд нет."
	startReply   = "Привет! Я слежу за статусом проверки твоей домашней работы и пришлю сообщение, как только он изменится. Команда /status покажет, как у меня дела."
)

// chatAllowed reports whether the command came from the one configured chat.
func chatAllowed(gotChatID, configuredChatID int64) bool {
	return gotChatID == configuredChatID
}

// statusText renders the /status reply from a poller stats snapshot.
func statusText(stats app.Stats) string {
	lastMessage := stats.LastMessage
	if lastMessage == "" {
		lastMessage = "пока не было"
	}

	var reply strings.Builder
	reply.WriteString("Бот работает.\n")
	reply.WriteString(fmt.Sprintf("Аптайм: %s\n", time.Since(stats.StartedAt).Round(time.Second)))
	reply.WriteString(fmt.Sprintf("Циклов опроса: %d\n", stats.Cycles))
	reply.WriteString(fmt.Sprintf("Отправлено уведомлений: %d\n", stats.NotificationsSent))
	reply.WriteString(fmt.Sprintf("Сбоев: %d\n", stats.Failures))
	reply.WriteString(fmt.Sprintf("Последнее уведомление: %s", lastMessage))
	return reply.String()
}

// RegisterBotCommands wires the inbound /start and /status commands. Only
// the configured chat is served; anyone else gets a short refusal.
func RegisterBotCommands(
	b *telebot.Bot,
	chatID int64,
	poller *app.Poller,
	baseLogger *logrus.Entry,
) {
	commandsLogger := baseLogger.WithField("handler_group", "bot_commands")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/start").WithField("chat_id", c.Chat().ID)
		logCtx.Info("Processing /start command")

		if !chatAllowed(c.Chat().ID, chatID) {
			logCtx.Info("Chat is not the configured one, refusing")
			return c.Send(refusalReply)
		}
		return c.Send(startReply)
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := commandsLogger.WithField("command", "/status").WithField("chat_id", c.Chat().ID)
		logCtx.Info("Processing /status command")

		if !chatAllowed(c.Chat().ID, chatID) {
			logCtx.Info("Chat is not the configured one, refusing")
			return c.Send(refusalReply)
		}
		return c.Send(statusText(poller.Stats()))
	})
}
