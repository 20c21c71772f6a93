package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prepdeck/prepdeck-web/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	return InitLoggerTo(os.Stdout, slog.LevelInfo)
}

// InitLoggerTo installs a JSON logger writing to w as the default.
func InitLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateConfig rejects configurations the web front end cannot start with.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cfg.Backend.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if cfg.Auth.Mode == config.AuthModeOAuth && cfg.Auth.OAuth.DiscoveryURL == "" {
		return errors.New("AUTH_MODE=oauth requires OAUTH_DISCOVERY_URL")
	}
	return nil
}
