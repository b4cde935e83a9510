package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/andrey-praktikum-98/homework-bot/internal/app"
	domainTelegram "github.com/andrey-praktikum-98/homework-bot/internal/domain/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestScheduler periodically sends a service digest (uptime and poll
// counters) through the same notifier the poll loop uses, so the chat gets
// a sign of life even on quiet days.
type DigestScheduler struct {
	cronEngine *cron.Cron
	poller     *app.Poller
	notifier   domainTelegram.Client
	logger     *logrus.Entry
	cronSpec   string
}

func NewDigestScheduler(
	poller *app.Poller,
	notifier domainTelegram.Client,
	logger *logrus.Logger,
	cronSpec string, // e.g. "0 9 * * *" (9:00 AM daily)
) *DigestScheduler {
	return &DigestScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		poller:     poller,
		notifier:   notifier,
		logger:     logger.WithField("component", "digest_scheduler"),
		cronSpec:   cronSpec,
	}
}

func (s *DigestScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for service digest")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.notifier.SendMessage(ctx, s.digestText()); err != nil {
			s.logger.WithError(err).Error("Failed to send service digest")
		}
	})
	if err != nil {
		return fmt.Errorf("could not add digest cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Digest scheduler started")
	return nil
}

func (s *DigestScheduler) digestText() string {
	stats := s.poller.Stats()
	lastMessage := stats.LastMessage
	if lastMessage == "" {
		lastMessage = "пока не было"
	}
	return fmt.Sprintf(
		"Бот работает уже %s.\nЦиклов опроса: %d\nОтправлено уведомлений: %d\nСбоев: %d\nПоследнее уведомление: %s",
		time.Since(stats.StartedAt).Round(time.Second),
		stats.Cycles,
		stats.NotificationsSent,
		stats.Failures,
		lastMessage,
	)
}

func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // Waits for a running job to finish.
	<-ctx.Done()
	s.logger.Info("Digest scheduler gracefully stopped")
}
