// Package logger builds slog loggers for the plunk client and its tools.
//
// Loggers are JSON (or text) handlers wrapped by a decorator that runs
// context extractors on every record, so request-scoped values such as a
// send ID show up without passing them explicitly:
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug}, plunk.SendIDExtractor)
//	log.InfoContext(ctx, "email queued")
//	// {"level":"INFO","msg":"email queued","send_id":"..."}
//
// NewWithSentry additionally forwards warnings and errors to Sentry when a
// DSN is configured and falls back to local output otherwise. Call the
// returned FlushFunc before the process exits.
//
// Libraries in this module default to NewNope so they stay silent unless the
// caller opts in.
package logger
