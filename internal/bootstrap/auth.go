package bootstrap

import (
	"log/slog"

	"github.com/prepdeck/prepdeck-web/config"
	"github.com/prepdeck/prepdeck-web/internal/adapters/authroles"
	"github.com/prepdeck/prepdeck-web/internal/adapters/devauth"
	"github.com/prepdeck/prepdeck-web/internal/adapters/oidc"
	redisadapter "github.com/prepdeck/prepdeck-web/internal/adapters/redis"
	"github.com/prepdeck/prepdeck-web/internal/ports"
	"github.com/prepdeck/prepdeck-web/internal/service"
	"github.com/redis/go-redis/v9"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	KeyPrefix   string
	API         service.APIOptions
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service for the configured sign-in mode.
// Without Redis the service still wraps the backend /auth endpoints but
// browser sessions are disabled, so the web UI runs signed out.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts := service.AuthServiceOptions{API: cfg.API}

	if cfg.RedisClient == nil {
		logger.Warn("browser sessions disabled: redis client not configured", "mode", cfg.Auth.Mode)
		return service.NewAuthService(opts)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "session:"
	}
	opts.Browser = service.BrowserAuthOptions{
		Sessions:     redisadapter.NewSessionStore(cfg.RedisClient, prefix),
		Roles:        authroles.StaticRoleMapper{AdminRole: cfg.Auth.AdminRole},
		ProviderName: cfg.Auth.OAuth.Provider,
		SessionTTL:   cfg.Auth.SessionTTL,
	}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		opts.Browser.Provider = buildDevProvider(cfg.Auth.DevAuth, logger)
	case config.AuthModeOAuth:
		opts.Browser.Provider = buildOAuthProvider(cfg.Auth.OAuth, logger)
	case config.AuthModePassword:
		// Email and password only; no redirect provider.
	}
	return service.NewAuthService(opts)
}

//nolint:ireturn // the provider is selected at runtime.
func buildDevProvider(cfg config.DevAuthConfig, logger *slog.Logger) ports.AuthProvider {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID: cfg.UserID,
		Email:  cfg.Email,
		Groups: cfg.Groups,
		Token:  cfg.Token,
	})
	if err != nil {
		logger.Warn("failed to create dev auth provider, social sign-in disabled", "error", err)
		return nil
	}
	return prov
}

//nolint:ireturn // the provider is selected at runtime.
func buildOAuthProvider(oauth config.OAuthConfig, logger *slog.Logger) ports.AuthProvider {
	// Only enable when fully configured
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		logger.Warn("AUTH_MODE=oauth selected but required config missing; social sign-in disabled",
			"discovery_url_empty", oauth.DiscoveryURL == "",
			"client_id_empty", oauth.ClientID == "",
			"client_secret_empty", oauth.ClientSecret == "",
		)
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
	})
	if err != nil {
		logger.Warn("failed to create OIDC provider, social sign-in disabled", "error", err)
		return nil
	}
	return prov
}
