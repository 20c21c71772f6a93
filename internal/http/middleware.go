package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
	"github.com/prepdeck/prepdeck-web/internal/observability/statsd"
	"github.com/prepdeck/prepdeck-web/internal/requestid"
)

// RequestID accepts a sane inbound X-Request-ID or mints one, echoes it on
// the response and stores it in the request context for logs and backend calls.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestid.Sanitize(r.Header.Get(requestid.Header))
			if id == "" {
				id = requestid.New()
			}
			w.Header().Set(requestid.Header, id)
			next.ServeHTTP(w, r.WithContext(requestid.WithContext(r.Context(), id)))
		})
	}
}

// Logging returns a middleware that logs HTTP requests and, when sink is
// non-nil, records a timing per route class.
func Logging(logger *slog.Logger, sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", elapsed),
				slog.String("request_id", requestid.FromContext(r.Context())),
			)
			if sink != nil {
				sink.Timing("http.request", elapsed, map[string]string{
					"method": r.Method,
					"status": statsd.StatusClass(ww.status),
					"htmx":   boolTag(IsHTMX(r)),
				})
			}
		})
	}
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// browserSession adapts a stored session to backend.Session. When the
// backend rejects the token the stored session is dropped so the next
// request starts signed out.
type browserSession struct {
	id      string
	token   string
	authSvc AuthServiceInterface
	logger  *slog.Logger
}

func (s *browserSession) AccessToken(context.Context) string { return s.token }

func (s *browserSession) Invalidate(ctx context.Context) {
	if err := s.authSvc.ExpireSession(ctx, s.id); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to drop rejected session", "error", err)
	}
}

// bindSession stores session in the request context for handlers and binds
// its backend token for every outgoing API call made with that context.
func bindSession(r *http.Request, session *domainauth.Session, authSvc AuthServiceInterface) *http.Request {
	ctx := SetSessionInContext(r.Context(), session)
	ctx = backend.WithSession(ctx, &browserSession{
		id:      session.ID,
		token:   session.AccessToken,
		authSvc: authSvc,
		logger:  slog.Default(),
	})
	return r.WithContext(ctx)
}

// RequireAuth returns a middleware that requires authentication.
// If the user is not authenticated, it returns a 401 Unauthorized response.
func RequireAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				writeAuthRequired(w)
				return
			}
			next.ServeHTTP(w, bindSession(r, session, authSvc))
		})
	}
}

// OptionalAuth adds the session to the request context when one exists and
// lets anonymous requests through unchanged.
func OptionalAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session := getSessionFromRequest(r, authSvc); session != nil {
				r = bindSession(r, session, authSvc)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthRequired(w http.ResponseWriter) {
	writeAPIError(w, http.StatusUnauthorized, "authentication_required", "authentication required")
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, authSvc AuthServiceInterface) *domainauth.Session {
	if authSvc == nil {
		return nil
	}
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil || sessionCookie.Value == "" {
		return nil
	}
	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}
	return session
}

// hasRequiredRole checks if the user's role meets the required role.
// Role hierarchy: Guest < User < Admin.
func hasRequiredRole(userRole, requiredRole domainauth.Role) bool {
	roleHierarchy := map[domainauth.Role]int{
		domainauth.RoleGuest: 0,
		domainauth.RoleUser:  1,
		domainauth.RoleAdmin: 2,
	}

	userLevel, userExists := roleHierarchy[userRole]
	requiredLevel, requiredExists := roleHierarchy[requiredRole]
	if !userExists || !requiredExists {
		return false
	}
	return userLevel >= requiredLevel
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that records whether the request
// came from a browser so handlers can choose HTML or JSON.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if isBrowser, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return isBrowser
	}
	return isBrowserRequest(r)
}

// isBrowserRequest treats /api/ and /static/ as non-browser, HTMX as
// browser, and otherwise goes by the Accept header.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html")
}

// RequireAuthBrowser requires a session. Browsers are sent to sign in,
// API clients get a 401 JSON body.
func RequireAuthBrowser(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				if IsBrowserRequest(r) {
					redirectToLogin(w, r, "")
					return
				}
				writeAuthRequired(w)
				return
			}
			next.ServeHTTP(w, bindSession(r, session, authSvc))
		})
	}
}

// RequireRoleBrowser is RequireAuthBrowser plus a minimum role.
func RequireRoleBrowser(authSvc AuthServiceInterface, requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				if IsBrowserRequest(r) {
					redirectToLogin(w, r, "")
					return
				}
				writeAuthRequired(w)
				return
			}

			if !hasRequiredRole(session.Role, requiredRole) {
				if IsBrowserRequest(r) {
					showAccessDenied(w, r)
					return
				}
				writeAPIError(w, http.StatusForbidden, "insufficient_permissions", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, bindSession(r, session, authSvc))
		})
	}
}

// redirectToLogin sends the browser to sign in, remembering where it was.
// HTMX requests get an HX-Redirect to the signed-out page instead of a swap.
// reason is shown on the signed-out page ("expired" after a backend 401).
func redirectToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	redirectPath := redirectPathForRequest(r)
	if redirectPath == "" {
		redirectPath = "/"
	}
	q := url.Values{"redirect_uri": {redirectPath}}
	if reason != "" {
		q.Set("reason", reason)
	}

	if IsHTMX(r) || reason != "" {
		target := "/auth/signed-out?" + q.Encode()
		if IsHTMX(r) {
			SetHXRedirect(w, target)
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/auth/login?"+q.Encode(), http.StatusSeeOther)
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
		if referer := safeRedirectFromURL(r.Header.Get("Referer")); referer != "" {
			return referer
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

func showAccessDenied(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Access Denied: You don't have permission to access this resource", http.StatusForbidden)
}
