package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
)

func noSession() *mockAuthServiceForMiddleware {
	return &mockAuthServiceForMiddleware{
		getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
			return nil, errors.New("session not found")
		},
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestRequireAuthBrowser_APIRequest(t *testing.T) {
	handler := BrowserDetection()(RequireAuthBrowser(noSession())(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestRequireAuthBrowser_BrowserRequest_Unauthenticated(t *testing.T) {
	handler := BrowserDetection()(RequireAuthBrowser(noSession())(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "/auth/login")
	assert.Contains(t, location, "redirect_uri=%2Fdashboard")
}

func TestRequireAuthBrowser_HTMXRequest_Unauthenticated(t *testing.T) {
	handler := BrowserDetection()(RequireAuthBrowser(noSession())(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/billing/subscription-panel", nil)
	req.Header.Set("Hx-Request", "true")
	req.Header.Set("Hx-Current-Url", "/billing")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/auth/signed-out?redirect_uri=%2Fbilling", w.Header().Get("Hx-Redirect"))
	assert.Empty(t, w.Header().Get("Location"))
}

func TestRequireAuthBrowser_HTMXRequest_Unauthenticated_NoCurrentURL(t *testing.T) {
	handler := BrowserDetection()(RequireAuthBrowser(noSession())(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/billing/history", nil)
	req.Header.Set("Hx-Request", "true")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/auth/signed-out?redirect_uri=%2Fbilling%2Fhistory", w.Header().Get("Hx-Redirect"))
	assert.Empty(t, w.Header().Get("Location"))
}

func TestRequireAuthBrowser_BrowserRequest_Authenticated(t *testing.T) {
	mockSvc := &mockAuthServiceForMiddleware{}
	handler := BrowserDetection()(RequireAuthBrowser(mockSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSessionFromContext(r.Context())
		assert.NotNil(t, session)
		assert.Equal(t, "test-user", session.UserID)
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedirectPathForRequest(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		currentURL string
		referer    string
		want       string
	}{
		{
			name:       "prefers current url",
			target:     "/billing/history",
			currentURL: "https://prepdeck.test/billing?tab=history",
			want:       "/billing?tab=history",
		},
		{
			name:    "falls back to referer",
			target:  "/pricing/plans",
			referer: "https://prepdeck.test/pricing",
			want:    "/pricing",
		},
		{
			name:       "rejects scheme relative",
			target:     "/pricing/plans",
			currentURL: "//evil.example.com/steal",
			referer:    "https://prepdeck.test/fallback",
			want:       "/fallback",
		},
		{
			name:       "malformed current url",
			target:     "/dashboard",
			currentURL: "http://%zz",
			referer:    "https://prepdeck.test/permissions?feature=mock_interview",
			want:       "/permissions?feature=mock_interview",
		},
		{
			name:       "falls back to request uri",
			target:     "/billing/history?limit=5",
			currentURL: "//evil.example.com/steal",
			referer:    "http://%zz",
			want:       "/billing/history?limit=5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("Hx-Request", "true")
			if tt.currentURL != "" {
				req.Header.Set("Hx-Current-Url", tt.currentURL)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, redirectPathForRequest(req))
		})
	}
}

func TestRedirectToLogin(t *testing.T) {
	t.Run("defaults to root", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = ""
		w := httptest.NewRecorder()

		redirectToLogin(w, req, "")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/auth/login?redirect_uri=%2F", w.Header().Get("Location"))
	})

	t.Run("expired goes through the signed-out page", func(t *testing.T) {
		w := httptest.NewRecorder()

		redirectToLogin(w, httptest.NewRequest(http.MethodGet, "/billing", nil), "expired")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/auth/signed-out?reason=expired&redirect_uri=%2Fbilling", w.Header().Get("Location"))
	})
}

func TestRequireRoleBrowser(t *testing.T) {
	tests := []struct {
		name        string
		role        domainauth.Role
		target      string
		accept      string
		wantStatus  int
		wantBody    string
		wantContent string
	}{
		{
			name:       "insufficient role in a browser",
			role:       domainauth.RoleUser,
			target:     "/permissions/probe",
			accept:     "text/html",
			wantStatus: http.StatusForbidden,
			wantBody:   "Access Denied",
		},
		{
			name:        "insufficient role over the api",
			role:        domainauth.RoleUser,
			target:      "/api/admin/probe",
			accept:      "application/json",
			wantStatus:  http.StatusForbidden,
			wantContent: "application/json",
		},
		{
			name:       "admin passes",
			role:       domainauth.RoleAdmin,
			target:     "/permissions/probe",
			accept:     "text/html",
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockAuthServiceForMiddleware{getSessionFunc: roleSession(tt.role)}
			handler := BrowserDetection()(RequireRoleBrowser(mockSvc, domainauth.RoleAdmin)(okHandler()))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("Accept", tt.accept)
			req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess"})
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			if tt.wantContent != "" {
				assert.Contains(t, w.Header().Get("Content-Type"), tt.wantContent)
			}
		})
	}
}

func TestRequireRoleBrowser_Unauthenticated(t *testing.T) {
	handler := BrowserDetection()(RequireRoleBrowser(noSession(), domainauth.RoleAdmin)(okHandler()))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/permissions/probe", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login")
}
