package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
	"github.com/prepdeck/prepdeck-web/internal/http/validation"
	"github.com/prepdeck/prepdeck-web/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	HasProvider() bool
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	PasswordLogin(ctx context.Context, creds model.Credentials) (*service.CompleteLoginResult, error)
	SignUp(ctx context.Context, req model.RegisterRequest) (*service.CompleteLoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	ExpireSession(ctx context.Context, sessionID string) error
	Logout(ctx context.Context, sessionID string) error
}

var _ AuthServiceInterface = (*service.AuthService)(nil)

const (
	oauthStateCookie     = "oauth_state"
	oauthNonceCookie     = "oauth_nonce"
	postLoginCookie      = "post_login_redirect"
	defaultLoginRedirect = "/dashboard"
	oauthCookieLifetime  = 10 * time.Minute

	maxEmailLen    = 254
	minPasswordLen = 8
	maxPasswordLen = 128
	maxFullNameLen = 120
)

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	UI           *UIHandlers // renders the sign-in and sign-up forms
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login shows the password form, or starts social sign-in when a provider
// is configured and the form was not explicitly requested.
// GET /auth/login?redirect_uri=<optional_redirect>[&form=password].
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURI := loginRedirect(r.URL.Query().Get("redirect_uri"))

	if _, ok := signedInSession(r.Context()); ok {
		http.Redirect(w, r, redirectURI, http.StatusSeeOther)
		return
	}

	if h.Svc.HasProvider() && r.URL.Query().Get("form") != "password" {
		h.beginSocialLogin(w, r, redirectURI)
		return
	}

	h.renderForm(w, r, &viewmodel.AuthPage{Mode: PageLogin, RedirectURI: redirectURI}, http.StatusOK)
}

func (h *AuthHandlers) beginSocialLogin(w http.ResponseWriter, r *http.Request, redirectURI string) {
	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "login_failed", err.Error())
		return
	}
	h.setOAuthCookies(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// SubmitLogin signs in with email and password.
// POST /auth/login.
func (h *AuthHandlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	page := &viewmodel.AuthPage{
		Mode:        PageLogin,
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		RedirectURI: loginRedirect(r.PostFormValue("redirect_uri")),
	}
	password := r.PostFormValue("password")

	fv := validation.New().
		Validate("email", page.Email, validation.Required("Email", maxEmailLen), validation.Email("Email")).
		Validate("password", password, validation.Required("Password", maxPasswordLen))
	if !fv.Valid() {
		page.FieldErrors = fv.Errors()
		h.renderForm(w, r, page, http.StatusUnprocessableEntity)
		return
	}

	result, err := h.Svc.PasswordLogin(r.Context(), model.Credentials{Email: page.Email, Password: password})
	if err != nil {
		h.formFailure(w, r, page, err)
		return
	}
	h.finishLogin(w, r, result.Session, page.RedirectURI)
}

// Register shows the sign-up form.
// GET /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	redirectURI := loginRedirect(r.URL.Query().Get("redirect_uri"))
	h.renderForm(w, r, &viewmodel.AuthPage{Mode: PageRegister, RedirectURI: redirectURI}, http.StatusOK)
}

// SubmitRegister creates an account and signs it in.
// POST /auth/register.
func (h *AuthHandlers) SubmitRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	page := &viewmodel.AuthPage{
		Mode:        PageRegister,
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		FullName:    strings.TrimSpace(r.PostFormValue("full_name")),
		RedirectURI: loginRedirect(r.PostFormValue("redirect_uri")),
	}
	password := r.PostFormValue("password")

	fv := validation.New().
		Validate("full_name", page.FullName, validation.Optional("Full name", maxFullNameLen)).
		Validate("email", page.Email, validation.Required("Email", maxEmailLen), validation.Email("Email")).
		Validate("password", password, validation.RequiredRange("Password", minPasswordLen, maxPasswordLen))
	if password != r.PostFormValue("password_confirm") {
		fv.Check("password_confirm", "Passwords do not match.")
	}
	if !fv.Valid() {
		page.FieldErrors = fv.Errors()
		h.renderForm(w, r, page, http.StatusUnprocessableEntity)
		return
	}

	result, err := h.Svc.SignUp(r.Context(), model.RegisterRequest{
		Email:    page.Email,
		Password: password,
		FullName: page.FullName,
	})
	if err != nil {
		h.formFailure(w, r, page, err)
		return
	}
	h.finishLogin(w, r, result.Session, page.RedirectURI)
}

// formFailure re-renders the form with the backend's message. A 401 from
// the login endpoint means bad credentials, not an expired session.
func (h *AuthHandlers) formFailure(w http.ResponseWriter, r *http.Request, page *viewmodel.AuthPage, err error) {
	status := DetermineErrorStatus(err)
	page.Error = ErrorMessage(err)
	if errors.Is(err, backend.ErrUnauthorized) {
		status = http.StatusUnprocessableEntity
		page.Error = "Incorrect email or password."
	}
	h.logger().InfoContext(r.Context(), "sign-in form rejected", "mode", page.Mode, "status", status, "error", err)
	h.renderForm(w, r, page, status)
}

func (h *AuthHandlers) finishLogin(w http.ResponseWriter, r *http.Request, s domainauth.Session, redirectURI string) {
	h.setSessionCookie(w, r, s)
	navigate(w, r, loginRedirect(redirectURI))
}

func (h *AuthHandlers) renderForm(w http.ResponseWriter, r *http.Request, page *viewmodel.AuthPage, status int) {
	title := "Sign in"
	if page.Mode == PageRegister {
		title = "Create your account"
	}
	page.Layout = buildLayout(r, PageMeta{Title: title + " - PrepDeck", PageTitle: title, CurrentPage: page.Mode})
	page.SocialLogin = h.Svc.HasProvider()
	if h.UI == nil || h.UI.T == nil {
		WriteJSON(w, status, map[string]any{"error": page.Error, "fields": page.FieldErrors})
		return
	}
	h.UI.renderPageStatus(w, r, page, status)
}

// Callback handles the OAuth callback endpoint.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		writeAPIError(w, http.StatusBadRequest, "missing_code", "authorization code is required")
		return
	}
	if state == "" {
		writeAPIError(w, http.StatusBadRequest, "missing_state", "state parameter is required")
		return
	}

	if cookieValue(r, oauthStateCookie) != state {
		writeAPIError(w, http.StatusBadRequest, "invalid_state", "invalid or missing state parameter")
		return
	}
	nonce := cookieValue(r, oauthNonceCookie)
	if nonce == "" {
		writeAPIError(w, http.StatusBadRequest, "missing_nonce", "missing nonce parameter")
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{Code: code, State: state, Nonce: nonce})
	if err != nil {
		h.logger().WarnContext(r.Context(), "social sign-in failed", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "login_completion_failed", err.Error())
		return
	}

	h.setSessionCookie(w, r, result.Session)
	clearCookie(w, r, oauthStateCookie, h.CookieDomain)
	clearCookie(w, r, oauthNonceCookie, h.CookieDomain)
	http.Redirect(w, r, h.getPostLoginRedirect(w, r), http.StatusFound)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if id := cookieValue(r, sessionCookieName); id != "" {
		if err := h.Svc.Logout(r.Context(), id); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	clearCookie(w, r, sessionCookieName, h.CookieDomain)

	redirectURI := r.FormValue("redirect_uri")
	if redirectURI == "" {
		redirectURI = "/"
	}
	signedOutURL := "/auth/signed-out?" + url.Values{"redirect_uri": {safeRedirectPath(redirectURI)}}.Encode()

	isAJAX := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	switch {
	case IsHTMX(r):
		HTMX(w).Redirect(signedOutURL)
	case isAJAX:
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": signedOutURL})
	default:
		http.Redirect(w, r, signedOutURL, http.StatusFound)
	}
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	id := cookieValue(r, sessionCookieName)
	if id == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), id)
	if err != nil {
		clearCookie(w, r, sessionCookieName, h.CookieDomain)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":         session.UserID,
			"first_name": session.FirstName,
			"last_name":  session.LastName,
			"email":      session.Email,
			"role":       session.Role,
			"plan":       session.Plan,
		},
		"expires_at": session.ExpiresAt,
	})
}

// clearCookie expires name, mirroring the attributes it was set with.
func clearCookie(w http.ResponseWriter, r *http.Request, name, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuthCookies stores state, nonce and the post-login redirect for the callback.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	for name, value := range map[string]string{
		oauthStateCookie: p.State,
		oauthNonceCookie: p.Nonce,
		postLoginCookie:  p.RedirectURI,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   isSecureRequest(r),
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(oauthCookieLifetime.Seconds()),
		})
	}
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// getPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	candidate := cookieValue(r, postLoginCookie)
	if candidate != "" {
		clearCookie(w, r, postLoginCookie, h.CookieDomain)
	}
	return loginRedirect(candidate)
}

// loginRedirect is where a sign-in lands: the requested path when one was
// given, the dashboard otherwise.
func loginRedirect(candidate string) string {
	if candidate == "" {
		return defaultLoginRedirect
	}
	return safeRedirectPath(candidate)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}
