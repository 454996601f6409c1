package plunk

import (
	"errors"
	"strings"
)

// Kind classifies a send failure.
type Kind string

const (
	// KindInvalidArgument is a caller mistake detected before any network call.
	KindInvalidArgument Kind = "invalid_argument"
	// KindGeneric is the base kind for every failure reported by the API.
	KindGeneric       Kind = "generic"
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindRejection     Kind = "rejection"
	KindMailSize      Kind = "mail_size"
	KindRateLimit     Kind = "rate_limit"
)

// Sentinels for errors.Is. Every API kind also matches ErrGeneric.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrGeneric         = &Error{Kind: KindGeneric}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrAuthorization   = &Error{Kind: KindAuthorization}
	ErrRejection       = &Error{Kind: KindRejection}
	ErrMailSize        = &Error{Kind: KindMailSize}
	ErrRateLimit       = &Error{Kind: KindRateLimit}
)

// ErrRequestFailed wraps transport failures: DNS, TLS, connection resets and
// context cancellation. These never carry an API kind.
var ErrRequestFailed = errors.New("plunk: request failed")

// Error is a classified send failure.
type Error struct {
	Kind       Kind
	Messages   []string
	StatusCode int // zero for KindInvalidArgument
}

func newError(kind Kind, status int, messages ...string) *Error {
	return &Error{Kind: kind, StatusCode: status, Messages: messages}
}

func invalidArgument(message string) *Error {
	return newError(KindInvalidArgument, 0, message)
}

// Message joins the server messages with ", ".
func (e *Error) Message() string {
	return strings.Join(e.Messages, ", ")
}

func (e *Error) Error() string {
	msg := e.Message()
	if msg == "" {
		return "plunk: " + string(e.Kind)
	}
	return "plunk: " + string(e.Kind) + ": " + msg
}

// Is matches errors of the same kind. ErrGeneric matches any API kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindGeneric && e.Kind != KindInvalidArgument
}

// Retryable reports whether repeating the same request may succeed:
// rate limiting and server-side (5xx) failures.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimit:
		return true
	case KindGeneric:
		return e.StatusCode >= 500
	}
	return false
}

// IsRetryable reports whether err is a retryable *Error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable()
}
