package backend

import (
	"context"
	"sync"
)

// Session supplies the bearer token for outgoing calls and is told when the
// backend rejects it. Implementations decide where the token lives.
type Session interface {
	AccessToken(ctx context.Context) string
	Invalidate(ctx context.Context)
}

type sessionCtxKey struct{}

// WithSession binds a session to ctx. Client prefers it over Options.Session,
// which lets one shared client serve many signed-in browsers.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session bound by WithSession.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(Session)
	return s, ok && s != nil
}

// MemorySession keeps the token in memory. OnChange, when set, is called
// with the new token after every Set and with "" after Invalidate; the CLI
// uses it to persist the token file.
type MemorySession struct {
	mu       sync.RWMutex
	token    string
	OnChange func(token string)
}

// NewMemorySession returns a session holding token.
func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

// AccessToken implements Session.
func (m *MemorySession) AccessToken(context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Set replaces the token.
func (m *MemorySession) Set(token string) {
	m.mu.Lock()
	m.token = token
	hook := m.OnChange
	m.mu.Unlock()
	if hook != nil {
		hook(token)
	}
}

// Invalidate implements Session by clearing the token.
func (m *MemorySession) Invalidate(context.Context) {
	m.Set("")
}

// SignedIn reports whether a token is held.
func (m *MemorySession) SignedIn() bool {
	return m.AccessToken(context.Background()) != ""
}

// StaticSession is a fixed token that ignores invalidation.
type StaticSession string

// AccessToken implements Session.
func (s StaticSession) AccessToken(context.Context) string { return string(s) }

// Invalidate implements Session.
func (StaticSession) Invalidate(context.Context) {}
