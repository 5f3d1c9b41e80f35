// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DirectoryStatic = "static"
	DirectorySQLite = "sqlite"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port       string        `env:"PORT" envDefault:"8080"`
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:5000/api/v1"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	DirectorySource string `env:"DIRECTORY_SOURCE" envDefault:"static"`
	DBPath          string `env:"DB_PATH" envDefault:"salesproj.db"`

	Locale   string `env:"LOCALE" envDefault:"en-US"`
	TimeZone string `env:"TIME_ZONE" envDefault:"Local"`

	NotificationDelay time.Duration `env:"NOTIFICATION_DELAY" envDefault:"5s"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// CSRFKey enables CSRF protection when set. It must be 32 bytes.
	CSRFKey       string `env:"CSRF_KEY"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.DirectorySource {
	case DirectoryStatic, DirectorySQLite:
	default:
		errs = append(errs, fmt.Errorf("DIRECTORY_SOURCE must be %q or %q, got %q", DirectoryStatic, DirectorySQLite, c.DirectorySource))
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("API_TIMEOUT must be positive"))
	}
	if c.NotificationDelay <= 0 {
		errs = append(errs, errors.New("NOTIFICATION_DELAY must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		errs = append(errs, fmt.Errorf("CSRF_KEY must be 32 bytes, got %d", len(c.CSRFKey)))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Level parses LOG_LEVEL.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}

// Location resolves TIME_ZONE; "Local" and "" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("TIME_ZONE: %w", err)
	}
	return loc, nil
}

// TracingEnabled reports whether spans should be exported.
func (c Config) TracingEnabled() bool {
	return c.OTelEnabled && c.OTelEndpoint != ""
}
