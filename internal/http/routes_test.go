package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
	"github.com/prepdeck/prepdeck-web/internal/mocks"
)

func newTestRouter(t *testing.T, auth AuthServiceInterface) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	return NewRouter(RouterServices{
		Auth:       auth,
		Billing:    mocks.NewMockBillingAPI(ctrl),
		Interviews: mocks.NewMockInterviewLister(ctrl),
		Jobs:       mocks.NewMockJobLister(ctrl),
		Resumes:    mocks.NewMockResumeLister(ctrl),
		Prober:     mocks.NewMockProber(ctrl),
		TemplateFS: os.DirFS(TemplatePathFromTest),
		BaseURL:    "https://prepdeck.test",
		Now:        func() time.Time { return fixedNow },
	})
}

func withCSRF(r *http.Request) *http.Request {
	r.Header.Set(DefaultCSRFHeaderName, "tok")
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
	return r
}

func TestNewRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNewRouter_PublicPages(t *testing.T) {
	router := newTestRouter(t, noSession())

	for _, target := range []string{"/", "/faq/toggle?open=1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Accept", "text/html")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}

func TestNewRouter_ProtectedPagesRedirect(t *testing.T) {
	router := newTestRouter(t, noSession())

	for _, target := range []string{"/dashboard", "/billing", "/permissions"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Accept", "text/html")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code, target)
		assert.Contains(t, w.Header().Get("Location"), "/auth/login?redirect_uri=")
	}
}

func TestNewRouter_ProbeIsAdminOnly(t *testing.T) {
	auth := &mockAuthServiceForMiddleware{getSessionFunc: roleSession(domainauth.RoleUser)}
	router := newTestRouter(t, auth)

	req := withCSRF(FormRequest("/permissions/probe", url.Values{"path": {"/api/plans"}}))
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access Denied")
}

func TestNewRouter_PostWithoutCSRFIsRejected(t *testing.T) {
	router := newTestRouter(t, &mockAuthServiceForMiddleware{})

	req := FormRequest("/billing/cancel", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "CSRF")
}

func TestNewRouter_NotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("browser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "doesn&#39;t exist")
	})

	t.Run("api", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/nowhere", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"not_found","message":"not found"}`, w.Body.String())
	})
}

func TestStaticWithCacheHeaders(t *testing.T) {
	handler := staticWithCacheHeaders(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/js/app.1a2b3c4d.js", nil))
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
}
