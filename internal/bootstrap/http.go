package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prepdeck/prepdeck-web/config"
	httpx "github.com/prepdeck/prepdeck-web/internal/http"
	"github.com/prepdeck/prepdeck-web/internal/observability/statsd"
)

const shutdownWaitTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config        *config.AppConfig
	Services      ServiceContainer
	Observability ObservabilityContainer
	Logger        *slog.Logger
}

// NewHTTPServer builds the server with the full middleware chain. It does
// not start listening.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := routerServices(appCfg, cfg.Services, logger)

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: services,
		HTTP:     appCfg.HTTP,
		Metrics:  cfg.Observability.Sink(),
	})

	addr := appCfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func routerServices(appCfg *config.AppConfig, svc ServiceContainer, logger *slog.Logger) httpx.RouterServices {
	rs := httpx.RouterServices{
		BaseURL:      appCfg.HTTP.BaseURL,
		CookieDomain: appCfg.HTTP.CookieDomain,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	}
	// Typed nils must not leak into the router's interfaces.
	if svc.Auth != nil {
		rs.Auth = svc.Auth
	}
	if svc.Billing != nil {
		rs.Billing = svc.Billing
	}
	if svc.Interviews != nil {
		rs.Interviews = svc.Interviews
	}
	if svc.Jobs != nil {
		rs.Jobs = svc.Jobs
	}
	if svc.Resumes != nil {
		rs.Resumes = svc.Resumes
	}
	if svc.Probe != nil {
		rs.Prober = svc.Probe
	}
	return rs
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
	Metrics  statsd.Sink
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Apply compression first (innermost) so logging captures compressed sizes.
	// Order: Recover -> RequestID -> Logging -> Compression -> Router
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel, Logger: cfg.Logger})(h)
	}

	h = httpx.Logging(cfg.Logger, cfg.Metrics)(h)
	h = httpx.RequestID()(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}

// ServeHTTP listens until ctx is canceled, then shuts the server down
// gracefully. A clean shutdown returns nil.
func ServeHTTP(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return errors.New("http server is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("HTTP server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	// The parent ctx is already done; shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownWaitTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
