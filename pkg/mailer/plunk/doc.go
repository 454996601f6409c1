// Package plunk delivers mailer.Email messages through the Plunk API.
//
//	sender := plunk.New(plunk.Settings{APIKey: cfg.PlunkAPIKey})
//	m := mailer.New(sender, mailer.Config{From: "team@example.com"})
//
// Use [Sender.Deliver] instead of Send when the API result is needed.
package plunk
