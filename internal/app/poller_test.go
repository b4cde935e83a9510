package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/andrey-praktikum-98/homework-bot/internal/domain/homework"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns a fixed response (or error) for every call and records
// the from_date values it was asked for.
type fakeClient struct {
	response  json.RawMessage
	err       error
	fromDates []int64
}

func (f *fakeClient) HomeworkStatuses(_ context.Context, fromDate int64) (json.RawMessage, error) {
	f.fromDates = append(f.fromDates, fromDate)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) SendMessage(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

func newTestPoller(client *fakeClient, notifier *fakeNotifier, startCursor int64) *Poller {
	log, _ := test.NewNullLogger()
	return NewPoller(client, notifier, log, time.Millisecond, startCursor)
}

func TestCycleSendsNotificationAndAdvancesCursor(t *testing.T) {
	client := &fakeClient{
		response: json.RawMessage(`{"homeworks": [{"homework_name": "proj1", "status": "approved"}], "current_date": 1000}`),
	}
	notifier := &fakeNotifier{}
	p := newTestPoller(client, notifier, 500)

	p.runCycle(context.Background())

	require.Len(t, notifier.messages, 1)
	assert.Equal(t,
		`Status changed for submission "proj1". Работа проверена: ревьюеру всё понравилось. Ура!`,
		notifier.messages[0])
	assert.Equal(t, int64(1000), p.cursor)
	assert.Equal(t, []int64{500}, client.fromDates)

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Cycles)
	assert.Equal(t, int64(1), stats.NotificationsSent)
	assert.Equal(t, int64(0), stats.Failures)
}

func TestCycleEmptyListIsQuiet(t *testing.T) {
	client := &fakeClient{response: json.RawMessage(`{"homeworks": []}`)}
	notifier := &fakeNotifier{}
	p := newTestPoller(client, notifier, 0)

	p.runCycle(context.Background())

	assert.Empty(t, notifier.messages)
	assert.Equal(t, int64(0), p.Stats().Failures)
}

func TestCycleDeduplicatesRepeatedStatus(t *testing.T) {
	client := &fakeClient{
		response: json.RawMessage(`{"homeworks": [{"homework_name": "proj1", "status": "reviewing"}], "current_date": 1000}`),
	}
	notifier := &fakeNotifier{}
	p := newTestPoller(client, notifier, 0)

	p.runCycle(context.Background())
	p.runCycle(context.Background())

	assert.Len(t, notifier.messages, 1)
	assert.Equal(t, int64(1), p.Stats().NotificationsSent)
}

func TestCycleReportsBadResponse(t *testing.T) {
	client := &fakeClient{err: &homework.BadResponseError{StatusCode: http.StatusServiceUnavailable}}
	notifier := &fakeNotifier{}
	p := newTestPoller(client, notifier, 0)

	p.runCycle(context.Background())

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Сбой в работе программы")
	assert.Contains(t, notifier.messages[0], "503")
	assert.Equal(t, int64(1), p.Stats().Failures)
}

func TestCycleReportsValidationFailure(t *testing.T) {
	client := &fakeClient{response: json.RawMessage(`{"current_date": 1000}`)}
	notifier := &fakeNotifier{}
	p := newTestPoller(client, notifier, 0)

	p.runCycle(context.Background())

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "homeworks")
	assert.Equal(t, int64(1), p.Stats().Failures)
}

func TestCycleKeepsCursorWhenCurrentDateAbsent(t *testing.T) {
	client := &fakeClient{
		response: json.RawMessage(`{"homeworks": [{"homework_name": "proj1", "status": "rejected"}]}`),
	}
	p := newTestPoller(client, &fakeNotifier{}, 777)

	p.runCycle(context.Background())

	assert.Equal(t, int64(777), p.cursor)
}

func TestCycleRetriesSendAfterNotifierFailure(t *testing.T) {
	client := &fakeClient{
		response: json.RawMessage(`{"homeworks": [{"homework_name": "proj1", "status": "approved"}], "current_date": 1000}`),
	}
	notifier := &fakeNotifier{err: errors.New("telegram: 429 Too Many Requests")}
	p := newTestPoller(client, notifier, 0)

	// A failed send must not crash the cycle and must not mark the message
	// as delivered.
	p.runCycle(context.Background())
	assert.Empty(t, notifier.messages)
	assert.Empty(t, p.lastMessage)

	// Once the transport recovers, the same status goes out.
	notifier.err = nil
	p.runCycle(context.Background())
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, notifier.messages[0], p.lastMessage)
}

func TestCycleCancelledDuringShutdownIsNotReported(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{err: ctx.Err()}
	notifier := &fakeNotifier{}
	p := newTestPoller(client, notifier, 0)

	p.runCycle(ctx)

	assert.Empty(t, notifier.messages)
	assert.Equal(t, int64(0), p.Stats().Failures)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	client := &fakeClient{response: json.RawMessage(`{"homeworks": []}`)}
	p := newTestPoller(client, &fakeNotifier{}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
	assert.GreaterOrEqual(t, p.Stats().Cycles, int64(1))
}
