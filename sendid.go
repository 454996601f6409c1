package plunk

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type sendIDKey struct{}

// WithSendID stores a send ID in ctx. Send reuses it instead of generating one,
// which lets callers correlate their own logs with the client's.
func WithSendID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sendIDKey{}, id)
}

// SendIDFromContext returns the send ID stored in ctx, if any.
func SendIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sendIDKey{}).(string); ok {
		return v
	}
	return ""
}

// SendIDExtractor adds "send_id" to log records written with a send context.
func SendIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if v := SendIDFromContext(ctx); v != "" {
		return slog.String("send_id", v), true
	}
	return slog.Attr{}, false
}

func ensureSendID(ctx context.Context) (context.Context, string) {
	if id := SendIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithSendID(ctx, id), id
}
