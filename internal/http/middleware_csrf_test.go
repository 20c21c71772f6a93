package httpx

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	resp := w.Result()
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_IssuesCookie(t *testing.T) {
	var seen string
	handler := CSRFProtection(CSRFConfig{CookieDomain: "prepdeck.test"})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetCSRFToken(r)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pricing", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	c := csrfCookie(t, w)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, c.Value, seen)
	assert.Equal(t, "prepdeck.test", c.Domain)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, 12*60*60, c.MaxAge)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "existing", GetCSRFToken(r))
	}))

	req := httptest.NewRequest(http.MethodGet, "/billing", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Nil(t, csrfCookie(t, w))
}

func TestCSRFProtection_Validation(t *testing.T) {
	const token = "tok-123"
	form := func(v string) *http.Request {
		return FormRequest("/billing/cancel", url.Values{DefaultCSRFCookieName: {v}})
	}
	plain := func() *http.Request {
		return httptest.NewRequest(http.MethodPost, "/permissions/check", strings.NewReader(`{}`))
	}

	tests := []struct {
		name   string
		req    *http.Request
		header string
		cookie string
		want   int
	}{
		{name: "header matches", req: plain(), header: token, cookie: token, want: http.StatusOK},
		{name: "form field matches", req: form(token), cookie: token, want: http.StatusOK},
		{name: "missing token", req: plain(), cookie: token, want: http.StatusForbidden},
		{name: "header mismatch", req: plain(), header: "other", cookie: token, want: http.StatusForbidden},
		{name: "form mismatch", req: form("other"), cookie: token, want: http.StatusForbidden},
		{name: "no cookie", req: plain(), header: token, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))
			if tt.header != "" {
				tt.req.Header.Set(DefaultCSRFHeaderName, tt.header)
			}
			if tt.cookie != "" {
				tt.req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, tt.req)

			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.want == http.StatusOK, called)
		})
	}
}

func TestRequiresCSRFValidation(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace} {
		assert.False(t, requiresCSRFValidation(m), m)
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.True(t, requiresCSRFValidation(m), m)
	}
}

func TestIsSecureRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isSecureRequest(req))

	req.Header.Set("X-Forwarded-Proto", "http, HTTPS")
	assert.True(t, isSecureRequest(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	assert.True(t, isSecureRequest(req))
}
