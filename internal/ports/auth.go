package ports

// Package ports defines interfaces (hexagonal ports) for sign-in behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
)

// BeginInput carries inputs for initiating a social sign-in.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes a sign-in against an identity provider.
type AuthProvider interface {
	// Begin starts the flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the flow, verifying state and nonce, and returns the identity
	// together with the raw ID token for the backend exchange.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SessionStore persists browser sessions, including the backend token.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps backend roles or provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
