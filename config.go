package notes

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"

	"github.com/notesapp/notes.go/pkg/constants"
	"github.com/notesapp/notes.go/pkg/logger"
)

// Config holds client settings sourced from the environment.
type Config struct {
	// BaseURL is the root of the notes service, e.g. https://api.example.com.
	BaseURL string `env:"NOTES_BASE_URL" validate:"omitempty,url"`

	// Timeout bounds each request. Zero disables the timeout.
	Timeout time.Duration `env:"NOTES_TIMEOUT" envDefault:"0s" validate:"gte=0"`

	// Logging. The level takes zerolog names; "disabled" keeps the client silent.
	LogLevel  string `env:"NOTES_LOG_LEVEL" envDefault:"disabled"`
	LogFormat string `env:"NOTES_LOG_FORMAT" envDefault:"json" validate:"omitempty,oneof=json console"`
	LogFile   string `env:"NOTES_LOG_FILE"`
}

// ParseConfig reads the environment without validating the result.
func ParseConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and validates the environment.
// NOTES_BASE_URL must be set to an http or https URL.
func LoadConfig() (*Config, error) {
	cfg, err := ParseConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config before a client is built from it.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("%w: set %s", constants.ErrNoBaseURL, constants.EnvBaseURL)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	switch u.Scheme {
	case constants.HTTPScheme, constants.HTTPSecureScheme:
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidScheme, cfg.BaseURL)
	}
	return nil
}

// Logger builds the logger described by the config. It returns the noop
// logger when logging is disabled.
func (cfg *Config) Logger() (logger.Logger, error) {
	if cfg.LogLevel == "" || cfg.LogLevel == "disabled" {
		return logger.Noop(), nil
	}

	logData, err := logger.New().
		FromPath(cfg.LogFile).
		WithLevel(cfg.LogLevel).
		WithFormat(cfg.LogFormat).
		Make()
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return logData, nil
}

// FromConfig creates a client from a validated config.
func FromConfig(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	return NewClient(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetLogger(l), nil
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns the process-wide client built from the environment.
//
// The environment is read on the first call only; later calls return the
// same client, or the same error. Prefer NewClient or FromConfig where the
// base URL can be passed explicitly.
func Default() (*Client, error) {
	defaultOnce.Do(func() {
		var cfg *Config
		cfg, defaultErr = LoadConfig()
		if defaultErr != nil {
			return
		}
		defaultClient, defaultErr = FromConfig(cfg)
	})
	return defaultClient, defaultErr
}
