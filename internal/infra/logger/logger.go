// internal/infra/logger/logger.go
package logger

import (
	"os"
	"strings"

	"github.com/andrey-praktikum-98/homework-bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// New builds the application logger from configuration. The logger is
// handed to components explicitly; there is no package-level instance.
func New(cfg *config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		log.SetLevel(level)
	}

	if cfg.Environment == "production" || cfg.Environment == "staging" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.Debugf("Log level set to: %s", log.GetLevel().String())
	return log
}
