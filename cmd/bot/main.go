package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrey-praktikum-98/homework-bot/internal/app"
	"github.com/andrey-praktikum-98/homework-bot/internal/infra/config"
	"github.com/andrey-praktikum-98/homework-bot/internal/infra/logger"
	"github.com/andrey-praktikum-98/homework-bot/internal/infra/practicum"
	"github.com/andrey-praktikum-98/homework-bot/internal/infra/scheduler"
	itg "github.com/andrey-praktikum-98/homework-bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logrus.New()
		bootLogger.SetOutput(os.Stdout)
		var missing *config.MissingEnvError
		if errors.As(err, &missing) {
			// One critical line per missing variable, then refuse to start
			// the loop at all.
			for _, v := range missing.Vars {
				bootLogger.WithField("variable", v).Log(logrus.FatalLevel, "Required environment variable is not set")
			}
			os.Exit(1)
		}
		bootLogger.WithError(err).Fatal("Could not load application configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"retry_time":  cfg.RetryTime.String(),
		"poll_from":   cfg.PollFrom,
	}).Info("Configuration loaded")

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			log.WithError(err).Error("Telebot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Fatal("Could not create Telegram bot")
	}

	notifier := itg.NewTelebotAdapter(bot, cfg.TelegramChatID)
	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.HTTPTimeout, log)
	poller := app.NewPoller(apiClient, notifier, log, cfg.RetryTime, cfg.StartCursor(time.Now()))

	itg.RegisterBotCommands(bot, cfg.TelegramChatID, poller, logrus.NewEntry(log))
	log.Info("Bot command handlers registered")

	digest := scheduler.NewDigestScheduler(poller, notifier, log, cfg.DigestCronSpec)
	if err := digest.Start(); err != nil {
		log.WithError(err).Fatal("Could not start digest scheduler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Run(ctx)
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	cancel()
	digest.Stop()
	bot.Stop()
	log.Info("Application shut down gracefully")
}
