// Package plunktest runs an in-process fake of the Plunk send endpoint.
//
// The server speaks TLS and records every request. Its Client dials the fake
// whatever host the request names, so a plunk.Client configured with the
// default API host reaches it unchanged:
//
//	srv := plunktest.NewServer(t)
//	client, _ := plunk.New(plunk.Config{APIKey: "key"}, plunk.WithHTTPClient(srv.Client()))
package plunktest

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// SendPath is the route the fake serves.
const SendPath = "/v1/send"

// Request is a recorded call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into v.
func (r Request) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Response is what the fake replies with.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Option configures a Server.
type Option func(*Server)

// WithResponse makes every call reply with status and body.
func WithResponse(status int, body string) Option {
	return func(s *Server) {
		s.responder = func(Request) Response {
			return Response{Status: status, Body: []byte(body)}
		}
	}
}

// WithResponder computes the reply per request.
func WithResponder(fn func(Request) Response) Option {
	return func(s *Server) {
		if fn != nil {
			s.responder = fn
		}
	}
}

// WithAPIKey rejects requests whose bearer token differs from key with 401.
func WithAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

// Server is a fake Plunk API.
type Server struct {
	srv       *httptest.Server
	apiKey    string
	responder func(Request) Response

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a fake API and closes it when the test ends.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{responder: defaultResponse}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.AllowContentType("application/json"))
	r.Post(SendPath, s.handleSend)

	s.srv = httptest.NewTLSServer(r)
	t.Cleanup(s.srv.Close)

	return s
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	resp := Response{
		Status: http.StatusUnauthorized,
		Body:   []byte(`{"errors":["Unauthorized"]}`),
	}
	if s.apiKey == "" || r.Header.Get("Authorization") == "Bearer "+s.apiKey {
		resp = s.responder(req)
	}

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Host returns the listener host.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.srv.Listener.Addr().String())
	return host
}

// Port returns the listener port.
func (s *Server) Port() int {
	_, port, _ := net.SplitHostPort(s.srv.Listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return p
}

// Client returns an HTTP client that trusts the fake's certificate and
// routes every connection to it.
func (s *Server) Client() *http.Client {
	base := s.srv.Client()
	transport := base.Transport.(*http.Transport).Clone()

	addr := s.srv.Listener.Addr().String()
	var d net.Dialer
	transport.DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
		return d.DialContext(ctx, network, addr)
	}
	// httptest certificates are issued for example.com and loopback IPs.
	transport.TLSClientConfig.ServerName = "example.com"

	return &http.Client{Transport: transport}
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls returns the number of requests received.
func (s *Server) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

type recipient struct {
	Email string `json:"email"`
}

type sendBody struct {
	To  []recipient `json:"to"`
	Cc  []recipient `json:"cc"`
	Bcc []recipient `json:"bcc"`
}

// defaultResponse acknowledges every recipient the way the API does.
func defaultResponse(req Request) Response {
	var in sendBody
	if err := req.JSON(&in); err != nil {
		return Response{Status: http.StatusBadRequest, Body: []byte(`{"errors":["invalid JSON body"]}`)}
	}

	type contact struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	type email struct {
		Contact contact `json:"contact"`
		Email   string  `json:"email"`
	}

	var all []recipient
	all = append(all, in.To...)
	all = append(all, in.Cc...)
	all = append(all, in.Bcc...)

	emails := make([]email, 0, len(all))
	for _, r := range all {
		emails = append(emails, email{
			Contact: contact{ID: uuid.NewString(), Email: r.Email},
			Email:   uuid.NewString(),
		})
	}

	body, _ := json.Marshal(map[string]any{"success": true, "emails": emails})
	return Response{Status: http.StatusOK, Body: body}
}
