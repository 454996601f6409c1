package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return slog.String("trace", v), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewWithWriter_AddsExtractedAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{Level: slog.LevelInfo}, traceExtractor)

	ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
	log.InfoContext(ctx, "hello")

	entry := decode(t, &buf)
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "abc", entry["trace"])
}

func TestNewWithWriter_SkipsMissingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{}, traceExtractor)

	log.InfoContext(context.Background(), "hello")

	entry := decode(t, &buf)
	require.NotContains(t, entry, "trace")
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

	log.Info("dropped")
	require.Zero(t, buf.Len())

	log.Warn("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{Format: "text"})

	log.Info("plain", slog.String("k", "v"))

	require.Contains(t, buf.String(), "msg=plain")
	require.Contains(t, buf.String(), "k=v")
}

func TestNewLogHandlerDecorator_NoExtractorsReturnsHandler(t *testing.T) {
	t.Parallel()

	h := slog.NewJSONHandler(&bytes.Buffer{}, nil)

	require.Same(t, h, NewLogHandlerDecorator(h, nil, nil))
}

func TestLogHandlerDecorator_WithAttrsKeepsExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{}, traceExtractor).With(slog.String("component", "test"))

	ctx := context.WithValue(context.Background(), ctxKey{}, "xyz")
	log.InfoContext(ctx, "hello")

	entry := decode(t, &buf)
	require.Equal(t, "test", entry["component"])
	require.Equal(t, "xyz", entry["trace"])
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestMultiHandler_DeliversToAllHandlers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ok := slog.NewJSONHandler(&buf, nil)
	broken := failingHandler{Handler: slog.NewJSONHandler(&bytes.Buffer{}, nil)}

	h := newMultiHandler(broken, ok)
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "both", 0))

	require.Error(t, err)
	require.Contains(t, buf.String(), "both")
}

func TestNewWithSentry_WithoutDSNFallsBackToLocal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, flush := NewWithSentry(&buf, Config{}, SentryConfig{})
	require.NotNil(t, flush)

	log.Error("local only")
	flush(0)

	require.Contains(t, buf.String(), "local only")
}

func TestNewNope_Discards(t *testing.T) {
	t.Parallel()

	log := NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
