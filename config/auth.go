package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the sign-in mode for the application.
type AuthMode string

const (
	// AuthModePassword signs users in with email and password against the backend.
	AuthModePassword AuthMode = "password"
	// AuthModeOAuth uses OAuth/OIDC and exchanges the ID token with the backend.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"prepdeck"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:""`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	// Provider is the name reported to the backend token exchange endpoint.
	Provider  string `env:"PROVIDER"   envDefault:"google"`
	LogoutURL string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string   `env:"USER_ID" envDefault:"dev-user"`
	Email  string   `env:"EMAIL"   envDefault:"dev@example.com"`
	Groups []string `env:"GROUPS"  envDefault:"admin"           envSeparator:";"`
	// Token is sent to the backend as the bearer token for the dev session.
	Token string `env:"TOKEN" envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which sign-in flow to offer.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminRole is the backend role (or dev group) that maps to the admin role.
	AdminRole string `env:"ADMIN_ROLE" envDefault:"admin"`

	// SessionTTL bounds how long a browser session lives when the backend
	// token carries no expiry of its own.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Mode == "" {
		a.Mode = AuthModePassword
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 12 * time.Hour
	}
	a.AdminRole = strings.TrimSpace(a.AdminRole)
}
