package console

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

var _ Config = (*EnvConfig)(nil)

// EnvConfig loads console options from the environment.
type EnvConfig struct {
	BaseURL         string        `env:"CONSOLE_API_URL" envDefault:"http://localhost:8000/api"`
	RequestTimeout  time.Duration `env:"CONSOLE_REQUEST_TIMEOUT" envDefault:"10s"`
	WatchInterval   time.Duration `env:"CONSOLE_WATCH_INTERVAL" envDefault:"30s"`
	StorePath       string        `env:"CONSOLE_STORE_PATH" envDefault:"console.db"`
	KeyringService  string        `env:"CONSOLE_KEYRING_SERVICE" envDefault:"go-console"`
	DefaultLanguage string        `env:"CONSOLE_LANGUAGE" envDefault:"en"`
}

// LoadConfig parses configuration from environment variables.
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse environment configuration")
	}
	return cfg, nil
}

func (c *EnvConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c *EnvConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c *EnvConfig) GetWatchInterval() time.Duration {
	return c.WatchInterval
}

func (c *EnvConfig) GetStorePath() string {
	return c.StorePath
}

func (c *EnvConfig) GetKeyringService() string {
	return c.KeyringService
}

func (c *EnvConfig) GetDefaultLanguage() Language {
	if lang, ok := ParseLanguage(c.DefaultLanguage); ok {
		return lang
	}
	return LanguageEnglish
}
