// internal/app/poller.go
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrey-praktikum-98/homework-bot/internal/domain/homework"
	domainTelegram "github.com/andrey-praktikum-98/homework-bot/internal/domain/telegram"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Stats is a snapshot of the poller's run counters. Read by the digest
// scheduler and the /status command handler.
type Stats struct {
	StartedAt         time.Time
	Cycles            int64
	NotificationsSent int64
	Failures          int64
	LastMessage       string
	LastCycleAt       time.Time
}

// Poller runs the fetch → validate → format → notify cycle on a fixed
// interval. It owns the poll state (the from_date cursor and the last sent
// message); nothing else touches it.
type Poller struct {
	client   homework.Client
	notifier domainTelegram.Client
	logger   *logrus.Entry
	interval time.Duration

	cursor      int64
	lastMessage string

	mu    sync.Mutex
	stats Stats
}

func NewPoller(
	client homework.Client,
	notifier domainTelegram.Client,
	logger *logrus.Logger,
	interval time.Duration,
	startCursor int64,
) *Poller {
	return &Poller{
		client:   client,
		notifier: notifier,
		logger:   logger.WithField("component", "poller"),
		interval: interval,
		cursor:   startCursor,
		stats:    Stats{StartedAt: time.Now()},
	}
}

// Run executes poll cycles until ctx is cancelled. Every error raised
// inside a cycle is reported and retried after the same interval; the loop
// never terminates on its own.
func (p *Poller) Run(ctx context.Context) {
	p.logger.WithFields(logrus.Fields{
		"interval":     p.interval.String(),
		"start_cursor": p.cursor,
	}).Info("Poller started")

	for {
		p.runCycle(ctx)
		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopped")
			return
		case <-time.After(p.interval):
		}
	}
}

// runCycle is one fetch → validate → format → notify pass.
func (p *Poller) runCycle(ctx context.Context) {
	p.mu.Lock()
	p.stats.Cycles++
	p.stats.LastCycleAt = time.Now()
	p.mu.Unlock()

	raw, err := p.client.HomeworkStatuses(ctx, p.cursor)
	if err != nil {
		p.reportFailure(ctx, err)
		return
	}

	resp, err := homework.CheckResponse(raw)
	if err != nil {
		p.reportFailure(ctx, err)
		return
	}

	if len(resp.Homeworks) == 0 {
		p.logger.Debug("No homework updates this cycle")
		return
	}

	// The API returns records newest-first; only the newest is of interest.
	message, err := homework.ParseStatus(resp.Homeworks[0])
	if err != nil {
		p.reportFailure(ctx, err)
		return
	}

	if resp.HasCurrentDate {
		p.cursor = resp.CurrentDate
	}

	if message == p.lastMessage {
		p.logger.Debug("Status unchanged, notification suppressed")
		return
	}
	if p.send(ctx, message) {
		p.lastMessage = message
		p.mu.Lock()
		p.stats.NotificationsSent++
		p.stats.LastMessage = message
		p.mu.Unlock()
	}
}

// reportFailure converts a cycle error into a log record and a user-facing
// notification routed through the same notifier as status updates. A cycle
// torn down by shutdown is not a failure: nothing is counted or notified.
func (p *Poller) reportFailure(ctx context.Context, err error) {
	if ctx.Err() != nil {
		p.logger.WithError(err).Debug("Poll cycle aborted by shutdown")
		return
	}
	p.logger.WithError(err).Error("Poll cycle failed")
	p.mu.Lock()
	p.stats.Failures++
	p.mu.Unlock()
	p.send(ctx, fmt.Sprintf("Сбой в работе программы: %v", err))
}

// send pushes text through the notifier. Transport failures are swallowed
// at this boundary: a failed notification must never take down the loop
// that is trying to report, so the error is logged and the cycle goes on.
// Returns whether the message was actually delivered to the transport.
func (p *Poller) send(ctx context.Context, text string) bool {
	logCtx := p.logger.WithField("delivery_id", uuid.NewString())
	if err := p.notifier.SendMessage(ctx, text); err != nil {
		logCtx.WithError(err).Error("Failed to send Telegram notification")
		return false
	}
	logCtx.WithField("message", text).Info("Notification sent")
	return true
}

// Stats returns a snapshot of the run counters. Safe to call from other
// goroutines.
func (p *Poller) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
