package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"time"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (sub)
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
	// IDToken is the raw OIDC token, forwarded to the backend for exchange.
	IDToken string
	// AccessToken is set when the provider already issued a backend token (dev mode).
	AccessToken string
}

// Session is the server-side record we persist for a signed-in browser.
// ID is an opaque session identifier; AccessToken is the backend bearer token
// and never leaves the server.
type Session struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	Role        Role           `json:"role"`
	Plan        model.PlanTier `json:"plan,omitempty"`
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// DisplayName prefers the first name and falls back to the email.
func (s Session) DisplayName() string {
	if s.FirstName != "" {
		return s.FirstName
	}
	return s.Email
}
