package plunk_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plunk"
	"github.com/dmitrymomot/plunk/pkg/mailer"
	plunksender "github.com/dmitrymomot/plunk/pkg/mailer/plunk"
	"github.com/dmitrymomot/plunk/pkg/plunktest"
)

func TestSender_Deliver(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t, plunktest.WithAPIKey("key"))
	s := plunksender.New(plunksender.Settings{APIKey: "key"}, plunk.WithHTTPClient(srv.Client()))

	res, err := s.Deliver(context.Background(), &mailer.Email{
		From:    "Team <team@example.com>",
		To:      []string{"ada@example.com", "Bob <bob@example.com>"},
		BCC:     []string{"audit@example.com"},
		Subject: "Welcome",
		HTML:    "<p>Hello</p>",
		Tags:    mailer.Category("onboarding"),
	})

	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Emails, 3)

	req, ok := srv.LastRequest()
	require.True(t, ok)

	var wire plunk.WireMessage
	require.NoError(t, req.JSON(&wire))
	require.Equal(t, []plunk.Address{{Email: "ada@example.com"}, {Email: "bob@example.com", Name: "Bob"}}, wire.To)
	require.Equal(t, "onboarding", wire.Category)
	require.Equal(t, "team@example.com", wire.From.Email)
}

func TestSender_MemoizesClient(t *testing.T) {
	t.Parallel()

	s := plunksender.New(plunksender.Settings{APIKey: "key", APIHost: "plunk.internal"})

	c1, err := s.Client()
	require.NoError(t, err)
	c2, err := s.Client()
	require.NoError(t, err)

	require.Same(t, c1, c2)
	require.Equal(t, "https://plunk.internal:443/v1/send", c1.Endpoint())
}

func TestSender_MissingAPIKey(t *testing.T) {
	t.Parallel()

	s := plunksender.New(plunksender.Settings{})

	err := s.Send(context.Background(), &mailer.Email{To: []string{"a@example.com"}, Text: "x"})

	require.ErrorIs(t, err, plunk.ErrInvalidArgument)
}

func TestSender_InvalidAddress(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t)
	s := plunksender.New(plunksender.Settings{APIKey: "key"}, plunk.WithHTTPClient(srv.Client()))

	err := s.Send(context.Background(), &mailer.Email{To: []string{"not an address"}, Text: "x"})

	require.ErrorIs(t, err, plunk.ErrInvalidArgument)
	require.Zero(t, srv.Calls())
}

func TestSender_WithMailer(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t, plunktest.WithResponse(http.StatusForbidden, `{"errors":["Sender not verified"]}`))
	s := plunksender.New(plunksender.Settings{APIKey: "key"}, plunk.WithHTTPClient(srv.Client()))
	m := mailer.New(s, mailer.Config{From: "noreply@example.com"})

	err := m.Send(context.Background(), &mailer.Email{
		To:      []string{"user@example.com"},
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
	})

	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.ErrorIs(t, err, plunk.ErrRejection)

	req, _ := srv.LastRequest()
	var wire plunk.WireMessage
	require.NoError(t, req.JSON(&wire))
	require.Equal(t, "noreply@example.com", wire.From.Email)
}
