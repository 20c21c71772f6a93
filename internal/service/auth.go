package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prepdeck/prepdeck-web/internal/backend"
	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/ports"
)

const defaultSessionTTL = 12 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API APIOptions // Required: backend client and logger
	// Browser enables server-side sessions; the CLI leaves it empty.
	Browser BrowserAuthOptions
}

// BrowserAuthOptions configures sign-in for the web front end.
type BrowserAuthOptions struct {
	Provider ports.AuthProvider // Optional: social or dev sign-in
	Sessions ports.SessionStore
	Roles    ports.RoleMapper
	// ProviderName is sent to the backend with the ID token, e.g. "google".
	ProviderName string
	// SessionTTL is used when the backend token carries no expiry.
	SessionTTL time.Duration
}

// AuthService wraps the backend /auth endpoints and, for the web front end,
// turns a backend token into a server-side session keyed by an opaque ID.
type AuthService struct {
	api
	provider     ports.AuthProvider
	sessions     ports.SessionStore
	roles        ports.RoleMapper
	providerName string
	ttl          time.Duration
	now          func() time.Time
}

var (
	errSessionExpired   = errors.New("session expired")
	errSessionsDisabled = errors.New("browser sessions are not configured")
	errNoProvider       = errors.New("social sign-in is not configured")
)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.Browser.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	name := opts.Browser.ProviderName
	if name == "" {
		name = "oidc"
	}
	return &AuthService{
		api:          newAPI(opts.API, "auth_service"),
		provider:     opts.Browser.Provider,
		sessions:     opts.Browser.Sessions,
		roles:        opts.Browser.Roles,
		providerName: name,
		ttl:          ttl,
		now:          time.Now,
	}
}

// HasProvider reports whether social or dev sign-in is available.
func (s *AuthService) HasProvider() bool { return s.provider != nil }

// Login exchanges email and password for a backend token.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*model.AuthToken, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	tok, err := backend.Call[model.AuthToken](ctx, s.client, http.MethodPost, endpoint("auth", "login"), creds)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}
	return &tok, nil
}

// Register creates an account and returns its first token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthToken, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tok, err := backend.Call[model.AuthToken](ctx, s.client, http.MethodPost, endpoint("auth", "register"), req)
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}
	return &tok, nil
}

// CurrentUser returns the account behind the context's token.
func (s *AuthService) CurrentUser(ctx context.Context) (*model.User, error) {
	u, err := backend.Call[model.User](ctx, s.client, http.MethodGet, endpoint("auth", "me"), nil)
	if err != nil {
		return nil, s.fail(ctx, "get current user", err)
	}
	return &u, nil
}

// ExchangeIDToken trades a verified social ID token for a backend token.
func (s *AuthService) ExchangeIDToken(ctx context.Context, provider, idToken string) (*model.AuthToken, error) {
	if idToken == "" {
		return nil, errors.New("id token is required")
	}
	body := model.IDTokenExchange{Provider: provider, IDToken: idToken}
	tok, err := backend.Call[model.AuthToken](ctx, s.client, http.MethodPost, endpoint("auth", "oauth", "exchange"), body)
	if err != nil {
		return nil, s.fail(ctx, "exchange id token", err)
	}
	return &tok, nil
}

// BeginLoginResult contains the result of beginning a social sign-in.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin starts a social sign-in and returns the provider URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errNoProvider
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a social sign-in.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the persisted session.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin exchanges the provider code for an identity, trades the ID
// token for a backend token and persists a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if s.provider == nil {
		return nil, errNoProvider
	}
	switch {
	case input.Code == "":
		return nil, errors.New("authorization code is required")
	case input.State == "":
		return nil, errors.New("state parameter is required")
	case input.Nonce == "":
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	var tok model.AuthToken
	if identity.IDToken != "" {
		exchanged, exErr := s.ExchangeIDToken(ctx, s.providerName, identity.IDToken)
		if exErr != nil {
			return nil, exErr
		}
		tok = *exchanged
	} else {
		// Dev identities carry their backend token, if any, directly.
		tok = model.AuthToken{
			AccessToken: identity.AccessToken,
			User: model.User{
				ID:       identity.UserID,
				Email:    identity.Email,
				FullName: strings.TrimSpace(identity.FirstName + " " + identity.LastName),
			},
		}
		if !identity.ExpiresAt.IsZero() {
			tok.ExpiresIn = int(identity.ExpiresAt.Sub(s.now()).Seconds())
		}
	}

	sess, err := s.startSession(ctx, tok, identity.Groups)
	if err != nil {
		return nil, err
	}
	return &CompleteLoginResult{Session: sess}, nil
}

// PasswordLogin signs in against the backend and persists a session.
func (s *AuthService) PasswordLogin(ctx context.Context, creds model.Credentials) (*CompleteLoginResult, error) {
	tok, err := s.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	sess, err := s.startSession(ctx, *tok, nil)
	if err != nil {
		return nil, err
	}
	return &CompleteLoginResult{Session: sess}, nil
}

// SignUp registers an account and persists a session for it.
func (s *AuthService) SignUp(ctx context.Context, req model.RegisterRequest) (*CompleteLoginResult, error) {
	tok, err := s.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	sess, err := s.startSession(ctx, *tok, nil)
	if err != nil {
		return nil, err
	}
	return &CompleteLoginResult{Session: sess}, nil
}

func (s *AuthService) startSession(ctx context.Context, tok model.AuthToken, groups []string) (domainauth.Session, error) {
	if s.sessions == nil {
		return domainauth.Session{}, errSessionsDisabled
	}
	if tok.User.Role != "" {
		groups = []string{tok.User.Role}
	}
	role := domainauth.RoleUser
	if s.roles != nil {
		role = s.roles.Map(groups)
	}

	sess := domainauth.Session{
		ID:          generateSessionID(),
		UserID:      tok.User.ID,
		FirstName:   tok.User.FirstName(),
		LastName:    tok.User.LastName(),
		Email:       tok.User.Email,
		Role:        role,
		Plan:        tok.User.Plan,
		AccessToken: tok.AccessToken,
		ExpiresAt:   s.expiryFor(tok),
	}
	if sess.UserID == "" && tok.AccessToken != "" {
		if info, err := backend.InspectToken(tok.AccessToken); err == nil {
			sess.UserID = info.Subject
		}
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.InfoContext(ctx, "session started", "user_id", sess.UserID, "role", sess.Role)
	return sess, nil
}

// expiryFor prefers expires_in, then the token's exp claim, then the TTL.
func (s *AuthService) expiryFor(tok model.AuthToken) time.Time {
	now := s.now()
	if tok.ExpiresIn > 0 {
		return now.Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return backend.TokenExpiry(tok.AccessToken, s.ttl, now)
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if s.sessions == nil {
		return nil, errSessionsDisabled
	}
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// ExpireSession drops a session whose backend token was rejected.
func (s *AuthService) ExpireSession(ctx context.Context, sessionID string) error {
	if s.sessions == nil || sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.InfoContext(ctx, "session expired by backend", "session_id", sessionID)
	return nil
}

// Logout revokes the backend token (best effort) and removes the session.
// With an empty sessionID only the backend call is made, using the context's token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID != "" && s.sessions != nil {
		sess, err := s.sessions.Get(ctx, sessionID)
		if err == nil && sess.AccessToken != "" {
			s.revoke(backend.WithSession(ctx, backend.StaticSession(sess.AccessToken)))
		}
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	}
	s.revoke(ctx)
	return nil
}

func (s *AuthService) revoke(ctx context.Context) {
	if _, err := backend.Call[struct{}](ctx, s.client, http.MethodPost, endpoint("auth", "logout"), nil); err != nil {
		s.logger.WarnContext(ctx, "backend logout failed", "error", err)
	}
}

// generateSessionID creates a random, URL-safe session ID.
func generateSessionID() string {
	return uuid.New().String()
}
