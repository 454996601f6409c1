package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// From is used when an email has no sender of its own.
	From string `env:"MAILER_FROM"`
	// PlainTextFallback derives a text body from HTML-only emails.
	PlainTextFallback bool `env:"MAILER_PLAIN_TEXT_FALLBACK" envDefault:"true"`
}
