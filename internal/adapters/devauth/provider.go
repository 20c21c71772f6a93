// Package devauth provides a config-driven AuthProvider for local development.
package devauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"time"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
	"github.com/prepdeck/prepdeck-web/internal/ports"
)

// Config controls the dev identity. Token, when set, is used as the backend
// bearer token for the session so a local backend can be exercised without
// a real identity provider.
type Config struct {
	UserID          string
	Email           string
	Groups          []string
	Token           string
	SessionDuration time.Duration // default 8h when zero
}

// Provider short-circuits the sign-in redirect back to our own callback and
// returns the configured identity from Exchange.
type Provider struct {
	cfg Config
	now func() time.Time
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = 8 * time.Hour
	}
	cfg.Groups = append([]string(nil), cfg.Groups...)
	return &Provider{cfg: cfg, now: time.Now}, nil
}

// Begin returns a local callback URL carrying a random state.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	q := url.Values{"code": {"dev"}, "state": {state}}
	return "/auth/callback?" + q.Encode(), state, nonce, nil
}

// Exchange returns the dev identity; state and nonce are checked by the handler.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	return domainauth.Identity{
		UserID:      p.cfg.UserID,
		Email:       p.cfg.Email,
		FirstName:   "Dev",
		LastName:    "User",
		Groups:      append([]string(nil), p.cfg.Groups...),
		AccessToken: p.cfg.Token,
		ExpiresAt:   p.now().Add(p.cfg.SessionDuration),
	}, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, (n*3+3)/4+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
