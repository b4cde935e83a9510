package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRetryTime      = 20 * time.Second
	defaultHTTPTimeout    = 10 * time.Second
	defaultDigestCronSpec = "0 9 * * *" // daily digest at 9 AM
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64
	Endpoint       string // empty selects the default Practicum endpoint
	RetryTime      time.Duration
	HTTPTimeout    time.Duration
	PollFrom       string // "now", "epoch" or a literal unix timestamp
	LogLevel       string
	Environment    string
	DigestCronSpec string
}

// MissingEnvError lists the required environment variables that were not
// set. All of them are collected so the operator sees every gap at once.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Vars, ", "))
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var missing []string

	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}

	// A malformed chat ID must not mask other gaps: the full missing list
	// is reported first, the parse error only once everything is set.
	var chatIDErr error
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	} else {
		cfg.TelegramChatID, chatIDErr = strconv.ParseInt(chatIDStr, 10, 64)
	}

	if len(missing) > 0 {
		return nil, &MissingEnvError{Vars: missing}
	}
	if chatIDErr != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", chatIDErr)
	}

	cfg.Endpoint = os.Getenv("ENDPOINT")

	cfg.RetryTime = defaultRetryTime
	if v := os.Getenv("RETRY_TIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RETRY_TIME: %w", err)
		}
		cfg.RetryTime = d
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	// Where the first poll starts from is an explicit choice: "now" skips
	// history, "epoch" replays everything, a literal timestamp resumes
	// from a known point.
	cfg.PollFrom = strings.ToLower(os.Getenv("POLL_FROM"))
	switch cfg.PollFrom {
	case "", "now":
		cfg.PollFrom = "now"
	case "epoch":
	default:
		if _, err := strconv.ParseInt(cfg.PollFrom, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid POLL_FROM %q: want \"now\", \"epoch\" or a unix timestamp", cfg.PollFrom)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.DigestCronSpec = os.Getenv("DIGEST_CRON_SPEC")
	if cfg.DigestCronSpec == "" {
		cfg.DigestCronSpec = defaultDigestCronSpec
	}

	return cfg, nil
}

// StartCursor resolves PollFrom into the initial from_date value.
func (c *AppConfig) StartCursor(now time.Time) int64 {
	switch c.PollFrom {
	case "now":
		return now.Unix()
	case "epoch":
		return 0
	default:
		ts, _ := strconv.ParseInt(c.PollFrom, 10, 64) // validated in Load
		return ts
	}
}
