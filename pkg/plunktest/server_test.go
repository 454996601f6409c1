package plunktest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plunk/pkg/plunktest"
)

func post(t *testing.T, hc *http.Client, url, key, body string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := hc.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestServer_DefaultResponse(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t)

	status, body := post(t, srv.Client(), "https://api.useplunk.com"+plunktest.SendPath, "key",
		`{"to":[{"email":"a@example.com"},{"email":"b@example.com"}],"bcc":[{"email":"c@example.com"}]}`)

	require.Equal(t, http.StatusOK, status)

	var res struct {
		Success bool `json:"success"`
		Emails  []struct {
			Contact struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"contact"`
			Email string `json:"email"`
		} `json:"emails"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	require.True(t, res.Success)
	require.Len(t, res.Emails, 3)
	require.Equal(t, "c@example.com", res.Emails[2].Contact.Email)
	require.NotEmpty(t, res.Emails[0].Contact.ID)

	require.Equal(t, 1, srv.Calls())
	last, ok := srv.LastRequest()
	require.True(t, ok)
	require.Equal(t, http.MethodPost, last.Method)
	require.Equal(t, plunktest.SendPath, last.Path)
	require.Equal(t, "Bearer key", last.Header.Get("Authorization"))
}

func TestServer_WithAPIKey(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t, plunktest.WithAPIKey("secret"))

	status, body := post(t, srv.Client(), srv.URL()+plunktest.SendPath, "wrong", `{"to":[]}`)

	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"errors":["Unauthorized"]}`, string(body))
	require.Equal(t, 1, srv.Calls())
}

func TestServer_WithResponse(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t, plunktest.WithResponse(http.StatusTooManyRequests, `{}`))

	status, _ := post(t, srv.Client(), srv.URL()+plunktest.SendPath, "key", `{"to":[]}`)

	require.Equal(t, http.StatusTooManyRequests, status)
}

func TestServer_WithResponder(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t, plunktest.WithResponder(func(r plunktest.Request) plunktest.Response {
		return plunktest.Response{Status: http.StatusAccepted, Body: r.Body}
	}))

	status, body := post(t, srv.Client(), srv.URL()+plunktest.SendPath, "key", `{"to":[{"email":"x@y.com"}]}`)

	require.Equal(t, http.StatusAccepted, status)
	require.JSONEq(t, `{"to":[{"email":"x@y.com"}]}`, string(body))
}

func TestServer_NoRequests(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t)

	_, ok := srv.LastRequest()
	require.False(t, ok)
	require.Empty(t, srv.Requests())
	require.NotZero(t, srv.Port())
	require.NotEmpty(t, srv.Host())
}

func TestServer_ResponseHeader(t *testing.T) {
	t.Parallel()

	srv := plunktest.NewServer(t, plunktest.WithResponder(func(plunktest.Request) plunktest.Response {
		return plunktest.Response{
			Status: http.StatusTooManyRequests,
			Header: http.Header{"Retry-After": {"30"}},
		}
	}))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL()+plunktest.SendPath, strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "30", resp.Header.Get("Retry-After"))
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
