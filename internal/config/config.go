// Package config resolves server settings from defaults, an optional .env
// file, the environment and finally command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/sujalbistaa/zevina/internal/db"
)

// Config holds runtime settings for the server.
type Config struct {
	Port             string
	DatabaseURL      string
	CORSOrigin       string
	LogLevel         string
	ChatReplyDelay   time.Duration
	PostRateInterval time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.DatabaseURL = db.DefaultURL
	c.CORSOrigin = "*"
	c.LogLevel = "info"
	c.ChatReplyDelay = 600 * time.Millisecond
	c.PostRateInterval = 3 * time.Second
}

// Load applies defaults, then .env (if present), then the environment.
// It reports whether a .env file was read.
func Load() (*Config, bool, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	dotenv := godotenv.Load() == nil
	if err := cfg.loadEnv(os.LookupEnv); err != nil {
		return nil, dotenv, err
	}
	return cfg, dotenv, nil
}

func (c *Config) loadEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("PORT", &c.Port)
	str("DATABASE_URL", &c.DatabaseURL)
	str("CORS_ORIGIN", &c.CORSOrigin)
	str("LOG_LEVEL", &c.LogLevel)
	if err := dur("CHAT_REPLY_DELAY", &c.ChatReplyDelay); err != nil {
		return err
	}
	return dur("POST_RATE_INTERVAL", &c.PostRateInterval)
}

// BindFlags registers flags whose defaults are the current values, so
// flags override the environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Port, "port", "p", c.Port, "HTTP listen port")
	fs.StringVar(&c.DatabaseURL, "database-url", c.DatabaseURL, "postgres://... or sqlite://<path>")
	fs.StringVar(&c.CORSOrigin, "cors-origin", c.CORSOrigin, "allowed CORS origin")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.DurationVar(&c.ChatReplyDelay, "chat-delay", c.ChatReplyDelay, "typing delay before a chatbot reply")
	fs.DurationVar(&c.PostRateInterval, "post-rate", c.PostRateInterval, "minimum interval between posts or comments per client")
}

// Validate checks settings that cannot be caught while parsing.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.ChatReplyDelay < 0 {
		return errors.New("chat delay must not be negative")
	}
	if c.PostRateInterval <= 0 {
		return errors.New("post rate interval must be positive")
	}
	return nil
}
