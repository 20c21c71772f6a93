package bootstrap

import (
	"context"
	"log/slog"

	"github.com/prepdeck/prepdeck-web/config"
	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/observability/statsd"
	"github.com/prepdeck/prepdeck-web/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds every backend-facing service.
type ServiceContainer struct {
	Client     *backend.Client
	Auth       *service.AuthService
	Billing    *service.BillingService
	Jobs       *service.JobService
	Resumes    *service.ResumeService
	Interviews *service.InterviewService
	Questions  *service.QuestionService
	Analysis   *service.AnalysisService
	Probe      *service.ProbeService
}

// ObservabilityContainer groups metrics emitters.
type ObservabilityContainer struct {
	// MetricsSink is nil when metrics are disabled.
	MetricsSink *statsd.Client
}

// Sink returns the sink as an interface, nil when disabled.
//
//nolint:ireturn // callers take the Sink interface.
func (o ObservabilityContainer) Sink() statsd.Sink {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink
}

// Close flushes and closes the metrics connection.
func (o ObservabilityContainer) Close() error {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink.Close()
}

// ServiceDeps contains dependencies for building services.
type ServiceDeps struct {
	Config        *config.AppConfig
	RedisClient   redis.UniversalClient // optional; nil disables browser sessions
	Observability ObservabilityContainer
	// Session is the fallback token holder; the web tier binds one per
	// request instead, the CLI passes its token file session here.
	Session backend.Session
	// OnSessionExpired runs after any backend 401.
	OnSessionExpired backend.ExpiredHook
	Logger           *slog.Logger
}

// BuildObservability configures the StatsD sink when enabled.
func BuildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Metrics.IsEnabled() {
		return ObservabilityContainer{}
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return ObservabilityContainer{}
	}
	return ObservabilityContainer{MetricsSink: client}
}

// NewBackendClient builds the shared REST client from config.
func NewBackendClient(deps *ServiceDeps) *backend.Client {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return backend.NewClient(backend.Options{
		BaseURL:          deps.Config.Backend.BaseURL,
		HTTPClient:       backend.NewHTTPClient(deps.Config.Backend.Timeout),
		Session:          deps.Session,
		OnSessionExpired: deps.OnSessionExpired,
		Metrics:          deps.Observability.Sink(),
		Logger:           logger,
	})
}

// NewServices wires every service onto one backend client.
func NewServices(deps *ServiceDeps) ServiceContainer {
	client := NewBackendClient(deps)
	api := service.APIOptions{Client: client, Logger: deps.Logger}

	return ServiceContainer{
		Client: client,
		Auth: BuildAuthService(AuthConfig{
			Auth:        deps.Config.Auth,
			RedisClient: deps.RedisClient,
			KeyPrefix:   deps.Config.Redis.KeyPrefix,
			API:         api,
			Logger:      deps.Logger,
		}),
		Billing:    service.NewBillingService(api),
		Jobs:       service.NewJobService(api),
		Resumes:    service.NewResumeService(api),
		Interviews: service.NewInterviewService(api),
		Questions:  service.NewQuestionService(api),
		Analysis:   service.NewAnalysisService(api),
		Probe:      service.NewProbeService(service.ProbeServiceOptions{API: api}),
	}
}

// LogSessionExpired is the default global 401 hook.
func LogSessionExpired(logger *slog.Logger) backend.ExpiredHook {
	return func(ctx context.Context) {
		logger.InfoContext(ctx, "backend rejected the session token")
	}
}
