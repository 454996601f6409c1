package plunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by New to a zero Config.
const (
	DefaultAPIHost = "api.useplunk.com"
	DefaultAPIPort = 443
)

// Config holds Plunk API configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey  string `env:"PLUNK_API_KEY" validate:"required"`
	APIHost string `env:"PLUNK_API_HOST" envDefault:"api.useplunk.com" validate:"required,hostname_rfc1123|ip"`
	APIPort int    `env:"PLUNK_API_PORT" envDefault:"443" validate:"min=1,max=65535"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) withDefaults() Config {
	if c.APIHost == "" {
		c.APIHost = DefaultAPIHost
	}
	if c.APIPort == 0 {
		c.APIPort = DefaultAPIPort
	}
	return c
}

// Validate checks the configuration and reports every invalid field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalidArgument(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return newError(KindInvalidArgument, 0, messages...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "hostname_rfc1123|ip", "hostname_rfc1123":
		return fmt.Sprintf("%s %q is not a valid hostname or IP address", fe.Field(), fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and 65535", fe.Field())
	}
	return fe.Field() + " is invalid: " + strings.ToLower(fe.Tag())
}
