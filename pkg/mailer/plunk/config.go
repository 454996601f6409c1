package plunk

// Settings holds the Plunk delivery settings a host application may set.
// Only the API key and host are configurable; the port stays at its default.
// Embed this in your app config for env parsing with caarlos0/env.
type Settings struct {
	APIKey  string `env:"PLUNK_API_KEY"`
	APIHost string `env:"PLUNK_API_HOST"`
}
