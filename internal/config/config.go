// Package config loads and validates application configuration from
// defaults, an optional config file, and environment variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           // Port to listen on
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
	ShutdownTimeout time.Duration // Grace period for server shutdown
}

// DatabaseConfig contains storage settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	JWTSecret     string        // HMAC signing key, required
	TokenDuration time.Duration // How long sessions stay valid
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string
}

// Load reads configuration from an optional tabkeep.env file in the
// working directory or ./configs, then overrides with environment
// variables, then validates.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("tabkeep.env")
	v.SetConfigType("env")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// No file is fine; env vars and defaults cover it.
	}

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("DB_PATH"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET"),
			TokenDuration: v.GetDuration("TOKEN_DURATION"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "60s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("DB_PATH", "./data/tabkeep.db")
	v.SetDefault("TOKEN_DURATION", "24h")
	v.SetDefault("LOG_LEVEL", "info")
}

// validate checks that all values meet minimum requirements.
func (c *Config) validate() error {
	var problems []string

	if c.Server.Port <= 0 {
		problems = append(problems, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		problems = append(problems, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		problems = append(problems, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Database.Path == "" {
		problems = append(problems, "DB_PATH is required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.Auth.TokenDuration <= 0 {
		problems = append(problems, "TOKEN_DURATION must be greater than 0")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
