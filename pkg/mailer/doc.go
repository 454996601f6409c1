// Package mailer is a provider-neutral outgoing-mail pipeline.
//
// An application builds an [Email] and hands it to a [Mailer], which checks
// that it has recipients and a body, fills in the default sender, derives a
// plain-text alternative from HTML-only messages and passes the result to a
// [Sender]. Providers implement Sender; the Plunk provider lives in
// pkg/mailer/plunk.
//
// # Usage
//
//	sender := plunk.New(plunk.Settings{APIKey: os.Getenv("PLUNK_API_KEY")})
//
//	m := mailer.New(sender, mailer.Config{
//		From:              mailer.Recipient("Team", "team@example.com"),
//		PlainTextFallback: true,
//	})
//
//	err := m.Send(ctx, &mailer.Email{
//		To:      []string{"user@example.com"},
//		Subject: "Welcome",
//		HTML:    "<p>Hello!</p>",
//		Tags:    mailer.Category("onboarding"),
//	})
//
// Failures from the provider are returned joined with [ErrSendFailed], so
// both errors.Is(err, mailer.ErrSendFailed) and provider-specific checks work.
//
// # Bodies
//
// [Markdown] converts a markdown document into an HTML body and keeps the
// source as the text body. [PlainText] strips markup from an HTML body.
//
// # Attachments
//
// An [Attachment] with a ContentID is inline (referenced from HTML as
// cid:...); without one it is a regular attachment.
package mailer
