// internal/infra/practicum/client.go

// Package practicum talks to the Practicum homework statuses API.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/andrey-praktikum-98/homework-bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the production homework statuses endpoint.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Client issues one GET per poll cycle. It performs no retries: a failed
// request is reported to the caller, retrying is the poll loop's job.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *logrus.Entry
}

// NewClient creates an API client. An empty endpoint selects the
// production one; tests and staging pass their own.
func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger.WithField("component", "practicum_client"),
	}
}

var _ homework.Client = (*Client)(nil)

// HomeworkStatuses fetches the raw JSON body for homeworks changed since
// fromDate. Shape validation is left to homework.CheckResponse; this layer
// only guarantees the body is parseable JSON.
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build homework statuses request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("Request to homework statuses endpoint failed")
		return nil, fmt.Errorf("%w: %v", homework.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status_code", resp.StatusCode).Error("Homework statuses endpoint returned non-OK status")
		return nil, &homework.BadResponseError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("Failed to read homework statuses response body")
		return nil, fmt.Errorf("%w: %v", homework.ErrServiceUnavailable, err)
	}

	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		c.logger.WithError(err).Error("Homework statuses response body is not valid JSON")
		return nil, &homework.MalformedResponseError{Err: err}
	}
	return json.RawMessage(body), nil
}
