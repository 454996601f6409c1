package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/plunk"
	"github.com/dmitrymomot/plunk/pkg/attachment"
	"github.com/dmitrymomot/plunk/pkg/logger"
	"github.com/dmitrymomot/plunk/pkg/mailer"
)

// Config is the command configuration, read from the environment.
type Config struct {
	Plunk       plunk.Config
	Mailer      mailer.Config
	Log         logger.Config
	Sentry      logger.SentryConfig
	Attachments attachment.S3Config
}

// loadConfig reads envFile, if present, and parses the environment.
// Variables already set in the environment win over the file.
func loadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
