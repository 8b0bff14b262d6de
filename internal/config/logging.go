package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the process logger from LoggingConfig and installs it as
// the zerolog global. Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(logOutput(cfg.Format)).
		Level(logLevel(cfg.Level)).
		With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

func logLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return parsed
}

// logOutput picks the writer for the configured format; anything other than
// "console" gets JSON lines on stdout.
func logOutput(format string) io.Writer {
	if strings.EqualFold(format, "console") {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}
