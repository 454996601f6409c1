package mailer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/plunk/pkg/logger"
)

// Mailer is the outgoing-mail pipeline: it checks a message, applies
// defaults and hands it to the configured Sender.
type Mailer struct {
	sender Sender
	logger *slog.Logger
	config Config
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger. If nil, logging stays disabled.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a new Mailer delivering through sender.
func New(sender Sender, cfg Config, opts ...Option) *Mailer {
	m := &Mailer{
		sender: sender,
		config: cfg,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send prepares email and delivers it.
// The caller's Email is not modified; defaults are applied to a copy.
func (m *Mailer) Send(ctx context.Context, email *Email) error {
	if email == nil || len(email.To) == 0 {
		return ErrNoRecipient
	}
	if email.Text == "" && email.HTML == "" {
		return ErrNoContent
	}

	prepared := Prepare(email, m.config)
	if prepared.From == "" {
		return ErrNoSender
	}

	if err := m.sender.Send(ctx, prepared); err != nil {
		m.logger.WarnContext(ctx, "mailer: delivery failed",
			slog.Int("recipients", len(prepared.To)+len(prepared.CC)+len(prepared.BCC)),
			slog.String("error", err.Error()),
		)
		return errors.Join(ErrSendFailed, err)
	}

	m.logger.DebugContext(ctx, "mailer: email delivered", slog.String("subject", prepared.Subject))
	return nil
}

// Prepare returns a copy of email with cfg's defaults applied: the default
// sender, and a plain-text part derived from HTML when PlainTextFallback is set.
func Prepare(email *Email, cfg Config) *Email {
	prepared := *email
	if prepared.From == "" {
		prepared.From = cfg.From
	}
	if prepared.Text == "" && prepared.HTML != "" && cfg.PlainTextFallback {
		prepared.Text = PlainText(prepared.HTML)
	}
	return &prepared
}
