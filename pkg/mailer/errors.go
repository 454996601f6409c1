package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSender indicates neither the email nor the config provides a sender.
	ErrNoSender = errors.New("email must have a sender")

	// ErrNoContent indicates neither a text nor an HTML body was provided.
	ErrNoContent = errors.New("email must have text or HTML content")

	// ErrMarkdownFailed indicates markdown conversion failed.
	ErrMarkdownFailed = errors.New("failed to convert markdown")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")
)
