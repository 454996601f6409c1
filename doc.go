// Package plunk is a client for the Plunk transactional email API.
//
// Build a [Mail] or a [TemplateMail] and hand it to [Client.Send]. The client
// posts it to /v1/send and returns either the API's [SendResult] or an
// [*Error] classified by HTTP status.
//
//	client, err := plunk.New(plunk.Config{APIKey: os.Getenv("PLUNK_API_KEY")})
//	if err != nil {
//	    return err
//	}
//
//	res, err := client.Send(ctx, &plunk.Mail{
//	    Envelope: plunk.Envelope{
//	        From: plunk.Address{Email: "hello@example.com", Name: "Example"},
//	        To:   []plunk.Address{{Email: "user@example.com"}},
//	    },
//	    Subject: "Welcome",
//	    HTML:    "<p>Hi there</p>",
//	})
//
// # Errors
//
// Failures reported by the API match [ErrGeneric] as well as their own kind:
//
//	switch {
//	case errors.Is(err, plunk.ErrValidation):
//	    // fix the payload
//	case plunk.IsRetryable(err):
//	    // rate limited or 5xx
//	case errors.Is(err, plunk.ErrRequestFailed):
//	    // network or context failure
//	}
//
// Caller mistakes such as a nil payload or a missing API key return
// [ErrInvalidArgument] before any request is made.
//
// # Host pipeline
//
// The pkg/mailer/plunk package converts mailer.Email messages into a [Mail]
// and wraps the client as a ready-made mailer.Sender. This package depends
// on neither, so using the bare client links no mail pipeline code.
//
// The client never retries. [Error.Retryable] is there for callers that
// want their own policy.
package plunk
