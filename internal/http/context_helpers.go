package httpx

import (
	"context"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
)

type sessionKey struct{}

// SetSessionInContext attaches the browser session; a nil session leaves ctx unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the browser session or nil.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	s, _ := ctx.Value(sessionKey{}).(*domainauth.Session)
	return s
}

// signedInSession returns the session only when it belongs to a real account.
func signedInSession(ctx context.Context) (*domainauth.Session, bool) {
	s := GetSessionFromContext(ctx)
	if s == nil || s.IsGuest() {
		return nil, false
	}
	return s, true
}
