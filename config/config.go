// Package config loads the server settings from the environment, an optional
// .env file and command-line flags, applying defaults so the binary runs
// locally with no setup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "bubble-secret-key-change-in-production"

type Config struct {
	Port string

	// Database
	DBDriver       string
	DBDsn          string
	DBMaxOpenConns int

	JWTSecret string
	TokenTTL  time.Duration

	// Bot
	TypingDelay      time.Duration
	ReminderSchedule string

	LogLevel  string
	LogFormat string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "3001")
	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("db_dsn", "./bubble.db")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("jwt_secret", devJWTSecret)
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("typing_delay", 1200*time.Millisecond)
	v.SetDefault("reminder_schedule", "* * * * *")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// LoadDotEnv reads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration from v. Keys map to upper-case env vars
// (PORT, DB_DRIVER, DB_DSN, ...); flags bound on v take precedence.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("port"),
		DBDriver:         v.GetString("db_driver"),
		DBDsn:            v.GetString("db_dsn"),
		DBMaxOpenConns:   v.GetInt("db_max_open_conns"),
		JWTSecret:        v.GetString("jwt_secret"),
		TokenTTL:         v.GetDuration("token_ttl"),
		TypingDelay:      v.GetDuration("typing_delay"),
		ReminderSchedule: v.GetString("reminder_schedule"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
	}

	if cfg.Port == "" {
		return nil, errors.New("port must not be empty")
	}
	switch cfg.DBDriver {
	case "sqlite3", "pgx":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q (want sqlite3 or pgx)", cfg.DBDriver)
	}
	if cfg.TypingDelay < 0 {
		return nil, fmt.Errorf("invalid TYPING_DELAY %s", cfg.TypingDelay)
	}
	return cfg, nil
}

// UsingDevSecret reports whether the built-in JWT secret is in use.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}
