package backend

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the front end may read from a backend access token.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken reads the registered claims of a JWT access token without
// verifying the signature. Only the backend can verify its tokens; the front
// end uses the claims to align session lifetimes and nothing else.
func InspectToken(token string) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, errors.New("empty token")
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("inspect token: %w", err)
	}
	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// TokenExpiry returns the token's expiry, or now+fallback when the token is
// opaque or carries no exp claim.
func TokenExpiry(token string, fallback time.Duration, now time.Time) time.Time {
	info, err := InspectToken(token)
	if err != nil || info.ExpiresAt.IsZero() {
		return now.Add(fallback)
	}
	return info.ExpiresAt
}
