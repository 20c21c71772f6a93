package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/prepdeck-web/config"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.prepdeck.test/api/")
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("WS_RECONNECT_MAX_ATTEMPTS", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.prepdeck.test/api", cfg.Backend.BaseURL)
	assert.Equal(t, config.AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, 7, cfg.Realtime.MaxReconnectAttempts)
}

func TestLoadConfig_InvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "ldap")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidateConfig(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))

	cfg := &config.AppConfig{}
	cfg.Sanitize()
	assert.NoError(t, ValidateConfig(cfg))

	cfg.Auth.Mode = config.AuthModeOAuth
	assert.ErrorContains(t, ValidateConfig(cfg), "OAUTH_DISCOVERY_URL")
}
