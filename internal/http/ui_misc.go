package httpx

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
)

// SignedOut renders a simple signed-out page with a Sign In button.
// reason=expired explains that the backend no longer accepts the session.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	data := viewmodel.SignedOutPage{
		Title:       "Signed out - PrepDeck",
		RedirectURI: redirect,
		Expired:     r.URL.Query().Get("reason") == "expired",
	}
	if data.Expired {
		data.Title = "Session expired - PrepDeck"
	}
	if h.T == nil {
		http.Redirect(w, r, "/auth/login?redirect_uri="+url.QueryEscape(redirect), http.StatusSeeOther)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	if err := h.T.Render(w, "signed-out-page", http.StatusOK, data); err != nil {
		w.Header().Del("Cache-Control")
		http.Redirect(w, r, "/auth/login?redirect_uri="+url.QueryEscape(redirect), http.StatusSeeOther)
	}
}

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderErrorPage(w, r, http.StatusNotFound, "The page you're looking for doesn't exist.")
		return
	}
	writeAPIError(w, http.StatusNotFound, "not_found", "not found")
}

// renderErrorPage renders the standalone error screen with code.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, code int, message string) {
	_, isAuthenticated := signedInSession(r.Context())

	data := &viewmodel.ErrorPage{
		Layout:      buildLayout(r, PageMeta{Title: http.StatusText(code) + " - PrepDeck", PageTitle: http.StatusText(code)}),
		Code:        strconv.Itoa(code),
		Message:     message,
		ShowLogin:   !isAuthenticated,
		RedirectURI: r.URL.RequestURI(),
	}
	if h.T == nil {
		http.Error(w, message, code)
		return
	}
	if err := h.T.Render(w, "error-layout", code, data); err != nil {
		http.Error(w, message, code)
	}
}
