package plunk

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/plunk"
	"github.com/dmitrymomot/plunk/pkg/mailer"
)

// Sender implements mailer.Sender using the Plunk API.
// The API client is built on first use and reused afterwards.
type Sender struct {
	settings Settings
	opts     []plunk.Option

	once   sync.Once
	client *plunk.Client
	err    error
}

// New creates a new Plunk sender. Client options such as plunk.WithLogger
// are passed through to the underlying client.
func New(settings Settings, opts ...plunk.Option) *Sender {
	return &Sender{settings: settings, opts: opts}
}

// Client returns the memoized API client, building it on first call.
func (s *Sender) Client() (*plunk.Client, error) {
	s.once.Do(func() {
		s.client, s.err = plunk.New(plunk.Config{
			APIKey:  s.settings.APIKey,
			APIHost: s.settings.APIHost,
		}, s.opts...)
	})
	return s.client, s.err
}

// Deliver converts email and sends it, returning the API result.
func (s *Sender) Deliver(ctx context.Context, email *mailer.Email) (*plunk.SendResult, error) {
	mail, err := FromMessage(email)
	if err != nil {
		return nil, err
	}

	client, err := s.Client()
	if err != nil {
		return nil, err
	}

	res, err := client.Send(ctx, mail)
	if err != nil {
		return nil, fmt.Errorf("plunk: failed to send email: %w", err)
	}
	return res, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	_, err := s.Deliver(ctx, email)
	return err
}
