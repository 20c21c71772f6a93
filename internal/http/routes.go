package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	prepdeck "github.com/prepdeck/prepdeck-web"
	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       AuthServiceInterface
	Billing    BillingAPI
	Interviews InterviewLister
	Jobs       JobLister
	Resumes    ResumeLister
	Prober     Prober
	// TemplateFS overrides template discovery; tests point it at disk.
	TemplateFS   fs.FS
	BaseURL      string
	CookieDomain string
	IsDev        bool         // Development mode flag for hot reloading, etc.
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
	Now          func() time.Time
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET "+StaticPrefix, staticWithFallback(services.IsDev, services.logger()))

	uiHandlers := setupUIHandlers(services)
	if services.Auth != nil {
		registerAuthRoutes(mux, &AuthHandlers{
			Svc:          services.Auth,
			UI:           uiHandlers,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}, services.Auth)
	}
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers, uiRouteConfig{Auth: services.Auth})
	}

	// Wrap with NotFound handler and browser detection middleware
	var handler http.Handler = &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(handler)
	return BrowserDetection()(handler)
}

// setupDevMode configures template FS, critical CSS FS, and asset resolver for dev mode.
func setupDevMode(diskManifestPath string, logger *slog.Logger) (fs.FS, fs.FS, *AssetResolver) {
	templateFS := os.DirFS(TemplatePathFromRoot)
	staticFS := os.DirFS(filepath.Join("frontend", "static"))

	resolver, err := NewAssetResolverFromFS(staticFS, "manifest.json")
	if err != nil {
		logger.Warn("failed to load asset manifest; falling back to logical asset names",
			"path", diskManifestPath, "error", err)
		resolver = nil
	}
	return templateFS, staticFS, resolver
}

// setupProdMode configures template FS, critical CSS FS, and asset resolver for production mode.
func setupProdMode(logger *slog.Logger) (fs.FS, fs.FS, *AssetResolver) {
	templateFS, err := fs.Sub(prepdeck.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("failed to create sub-filesystem for templates; falling back to disk", "error", err)
		templateFS = os.DirFS(TemplatePathFromRoot)
	}

	staticSub, err := fs.Sub(prepdeck.StaticFS, "frontend/static")
	if err != nil {
		logger.Warn("failed to create sub-filesystem for static assets", "error", err)
		return templateFS, nil, nil
	}
	resolver, err := NewAssetResolverFromFS(staticSub, "manifest.json")
	if err != nil {
		logger.Warn("failed to load asset manifest from embedded FS", "error", err)
		resolver = nil
	}
	return templateFS, staticSub, resolver
}

// setupUIHandlers creates UI handlers with template renderer and asset resolver.
// In dev mode (services.IsDev=true), templates are loaded from disk for hot reloading.
// In production mode (services.IsDev=false), templates are loaded from embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	logger := services.logger()

	var templateFS, criticalCSSFS fs.FS
	var resolver *AssetResolver
	if services.IsDev {
		templateFS, criticalCSSFS, resolver = setupDevMode(filepath.Join("frontend", "static", "manifest.json"), logger)
	} else {
		templateFS, criticalCSSFS, resolver = setupProdMode(logger)
	}
	if services.TemplateFS != nil {
		templateFS = services.TemplateFS
	}
	if resolver == nil {
		resolver = &AssetResolver{}
	}
	resolver.SetLogger(logger)

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:    templateFS,
		Resolver:      resolver,
		CriticalCSSFS: criticalCSSFS,
		DevMode:       services.IsDev,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}

	return &UIHandlers{
		T:            tr,
		Billing:      services.Billing,
		Interviews:   services.Interviews,
		Jobs:         services.Jobs,
		Resumes:      services.Resumes,
		Prober:       services.Prober,
		Auth:         services.Auth,
		BaseURL:      strings.TrimRight(services.BaseURL, "/"),
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
		Now:          services.Now,
	}
}

// staticWithFallback serves /static/* assets.
// In dev mode (isDev=true), serves from disk for hot reloading.
// In production mode (isDev=false), serves from embedded FS.
func staticWithFallback(isDev bool, logger *slog.Logger) http.Handler {
	diskDir := filepath.Join("frontend", "static")
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix(StaticPrefix, http.FileServer(http.Dir(diskDir))))
	}

	staticSub, err := fs.Sub(prepdeck.StaticFS, "frontend/static")
	if err != nil {
		logger.Warn("failed to create sub-filesystem for static assets; serving from disk", "error", err)
		return staticWithCacheHeaders(http.StripPrefix(StaticPrefix, http.FileServer(http.Dir(diskDir))))
	}
	return staticWithCacheHeaders(http.StripPrefix(StaticPrefix, http.FileServer(http.FS(staticSub))))
}

// hashedFilePattern matches content-hashed filenames including optional .map
// (e.g., app.abc123de.js, styles.def45678.css, app.abc123de.js.map).
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and renders unmatched GET/HEAD
// requests with the UI 404 page. Other methods get the mux's 404 or 405.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, pattern := h.mux.Handler(r)
	unmatched := pattern == "" && !strings.HasPrefix(r.URL.Path, StaticPrefix)
	if unmatched && h.uiHandlers != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		h.uiHandlers.NotFound(w, r)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, auth AuthServiceInterface) {
	optional := OptionalAuth(auth)
	mux.Handle("GET /auth/login", optional(http.HandlerFunc(h.Login)))
	mux.Handle("POST /auth/login", optional(http.HandlerFunc(h.SubmitLogin)))
	mux.Handle("GET /auth/register", optional(http.HandlerFunc(h.Register)))
	mux.Handle("POST /auth/register", optional(http.HandlerFunc(h.SubmitRegister)))
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth AuthServiceInterface
}

// authWrap returns a no-op wrapper when auth is nil, otherwise applies RequireAuthBrowser.
func (cfg uiRouteConfig) authWrap() func(http.Handler) http.Handler {
	if cfg.Auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAuthBrowser(cfg.Auth)
}

// optionalWrap attaches the session when present; public pages use it to
// tailor content for signed-in visitors.
func (cfg uiRouteConfig) optionalWrap() func(http.Handler) http.Handler {
	if cfg.Auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return OptionalAuth(cfg.Auth)
}

// adminWrap returns a no-op wrapper when auth is nil, otherwise applies RequireRoleBrowser.
func (cfg uiRouteConfig) adminWrap() func(http.Handler) http.Handler {
	if cfg.Auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireRoleBrowser(cfg.Auth, domainauth.RoleAdmin)
}

// registerUIRoutes delegates to per-area UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerUIPublicRoutes(mux, h, cfg)
	registerUIBillingRoutes(mux, h, cfg)
	registerUIPermissionRoutes(mux, h, cfg)
	mux.Handle("GET /dashboard", cfg.authWrap()(http.HandlerFunc(h.Dashboard)))
	// Public auth-related UI routes (no auth wrapper)
	mux.Handle("GET /auth/signed-out", http.HandlerFunc(h.SignedOut))
}

func registerUIPublicRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.optionalWrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Landing)))
	mux.Handle("GET /faq/toggle", http.HandlerFunc(h.FAQToggle))
	if h.Billing == nil {
		return
	}
	mux.Handle("GET /pricing", wrap(http.HandlerFunc(h.Pricing)))
	mux.Handle("GET /pricing/plans", wrap(http.HandlerFunc(h.PricingPlans)))
}

func registerUIBillingRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	if h.Billing == nil {
		return
	}
	wrap := cfg.authWrap()
	mux.Handle("GET /billing", wrap(http.HandlerFunc(h.BillingPage)))
	mux.Handle("GET /billing/subscription-panel", wrap(http.HandlerFunc(h.SubscriptionPanel)))
	mux.Handle("GET /billing/history", wrap(http.HandlerFunc(h.BillingHistory)))
	mux.Handle("POST /billing/checkout", wrap(http.HandlerFunc(h.Checkout)))
	mux.Handle("POST /billing/cancel", wrap(http.HandlerFunc(h.CancelSubscription)))
	mux.Handle("POST /billing/reactivate", wrap(http.HandlerFunc(h.ReactivateSubscription)))
	mux.Handle("POST /billing/portal", wrap(http.HandlerFunc(h.BillingPortal)))
}

func registerUIPermissionRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	if h.Billing == nil {
		return
	}
	wrap := cfg.authWrap()
	mux.Handle("GET /permissions", wrap(http.HandlerFunc(h.Permissions)))
	mux.Handle("POST /permissions/check", wrap(http.HandlerFunc(h.CheckPermission)))
	mux.Handle("POST /permissions/usage", wrap(http.HandlerFunc(h.RecordUsage)))
	if h.Prober != nil {
		mux.Handle("POST /permissions/probe", cfg.adminWrap()(http.HandlerFunc(h.Probe)))
	}
}
