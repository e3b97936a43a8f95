package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Modes for secret loading.
const (
	ModeLocal      = "local"
	ModeProduction = "production"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// SecretsMode selects the secrets backend: "local" reads the secret
	// fields from the environment, "production" fetches them from a
	// version-controlled file on GitHub.
	SecretsMode string `env:"SECRETS_MODE" default:"local"`

	GitHubToken       string `env:"GITHUB_TOKEN"`
	GitHubOwner       string `env:"GITHUB_OWNER"`
	GitHubRepo        string `env:"GITHUB_REPO"`
	GitHubSecretsPath string `env:"GITHUB_SECRETS_PATH" default:"secrets.json"`

	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" default:"5s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SecretsMode != ModeLocal && cfg.SecretsMode != ModeProduction {
		return fmt.Errorf("SECRETS_MODE must be %q or %q, got %q", ModeLocal, ModeProduction, cfg.SecretsMode)
	}
	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", cfg.FetchTimeout)
	}
	return nil
}
