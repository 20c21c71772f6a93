package httpx

import (
	"bytes"
	"context"
	"errors"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	"github.com/prepdeck/prepdeck-web/internal/http/ui/viewmodel"
	"github.com/prepdeck/prepdeck-web/internal/service"
)

// BillingAPI is the billing surface the pricing, billing and permissions pages use.
type BillingAPI interface {
	Plans(ctx context.Context) ([]model.Plan, error)
	Subscription(ctx context.Context) (*model.Subscription, error)
	Usage(ctx context.Context) ([]model.UsageCounter, error)
	Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error)
	Cancel(ctx context.Context) (*model.Subscription, error)
	Reactivate(ctx context.Context) (*model.Subscription, error)
	History(ctx context.Context, limit int) ([]model.Payment, error)
	Portal(ctx context.Context, returnURL string) (*model.PortalSession, error)
	CheckPermission(ctx context.Context, feature model.Feature) (*model.PermissionCheck, error)
	RecordUsage(ctx context.Context, feature model.Feature) (*model.UsageCounter, error)
}

// InterviewLister lists the caller's practice interviews.
type InterviewLister interface {
	List(ctx context.Context) ([]model.InterviewSession, error)
}

// JobLister lists the caller's tracked jobs.
type JobLister interface {
	List(ctx context.Context, opts model.JobListOptions) ([]model.Job, error)
}

// ResumeLister lists the caller's resumes.
type ResumeLister interface {
	List(ctx context.Context) ([]model.Resume, error)
}

// Prober runs the admin raw backend probe.
type Prober interface {
	Probe(ctx context.Context, path, expr string) (*service.ProbeOutput, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ BillingAPI      = (*service.BillingService)(nil)
	_ InterviewLister = (*service.InterviewService)(nil)
	_ JobLister       = (*service.JobService)(nil)
	_ ResumeLister    = (*service.ResumeService)(nil)
	_ Prober          = (*service.ProbeService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T          *TemplateRenderer
	Billing    BillingAPI
	Interviews InterviewLister
	Jobs       JobLister
	Resumes    ResumeLister
	Prober     Prober
	// Auth is consulted for the sign-in form only; may be nil in tests.
	Auth AuthServiceInterface
	// BaseURL is the public origin used for checkout and portal return links.
	BaseURL      string
	CookieDomain string
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
	Now          func() time.Time
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// absoluteURL joins the configured public origin with path.
func (h *UIHandlers) absoluteURL(r *http.Request, path string) string {
	if h.BaseURL != "" {
		return h.BaseURL + path
	}
	scheme := "http"
	if isSecureRequest(r) {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	if session, ok := signedInSession(r.Context()); ok {
		layout.IsAuthenticated = true
		layout.IsAdmin = session.IsAdmin()
		layout.User = &viewmodel.User{
			Name:  session.DisplayName(),
			Email: session.Email,
			Role:  string(session.Role),
			Plan:  string(session.Plan),
		}
	}
	return layout
}

// renderPage renders a full document, or for htmx navigation the content
// template plus a <title> and an out-of-band header title.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data viewmodel.LayoutProvider) {
	h.renderPageStatus(w, r, data, http.StatusOK)
}

// renderPageStatus is renderPage with an explicit status, used for rejected forms.
func (h *UIHandlers) renderPageStatus(w http.ResponseWriter, r *http.Request, data viewmodel.LayoutProvider, status int) {
	if !WantsPartial(r) {
		if err := h.T.Render(w, "layout", status, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	layout := data.LayoutData()
	var buf bytes.Buffer
	buf.WriteString(`<title>` + html.EscapeString(layout.Title) + `</title>`)
	buf.WriteString(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(layout.PageTitle) + `</h1>`)
	if err := h.T.Execute(&buf, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Error("failed to write partial page", "error", err)
	}
}

// renderFragment renders one named template with status. Buffered so a
// template failure never leaves half a panel on the wire.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	if err := h.T.Render(w, name, status, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment "+name)
	}
}

// sessionExpired handles a backend 401: the browser session was already
// dropped by the request-scoped backend session, so clear the cookie and
// send the user to the signed-out page. It reports whether it responded.
func (h *UIHandlers) sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, backend.ErrUnauthorized) {
		return false
	}
	clearCookie(w, r, sessionCookieName, h.CookieDomain)
	redirectToLogin(w, r, "expired")
	return true
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="dev-template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
