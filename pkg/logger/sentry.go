package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// MinLevel determines which log levels are stored in Sentry (slog.LevelWarn keeps warnings and errors).
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// FlushFunc blocks until buffered events are delivered or the timeout expires.
type FlushFunc func(timeout time.Duration)

func noFlush(time.Duration) {}

// NewWithSentry creates a logger that writes to w and forwards to Sentry.
// If DSN is empty or the SDK fails to initialize, only w is used.
// Errors always become Sentry issues; MinLevel controls which records are kept as logs.
func NewWithSentry(w io.Writer, cfg Config, sentryCfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, FlushFunc) {
	local := newHandler(w, cfg)

	if sentryCfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, extractors...)), noFlush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sentryCfg.DSN,
		Environment: sentryCfg.Environment,
		Release:     sentryCfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(local, extractors...)), noFlush
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if sentryCfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(local, remote)

	return slog.New(NewLogHandlerDecorator(combined, extractors...)), func(timeout time.Duration) {
		sentry.Flush(timeout)
	}
}
