package bootstrap

import (
	"log/slog"

	"github.com/prepdeck/prepdeck-web/config"
	"github.com/prepdeck/prepdeck-web/internal/realtime"
)

// ReconnectPolicy maps config onto the realtime client's policy.
func ReconnectPolicy(cfg config.RealtimeConfig) realtime.ReconnectPolicy {
	return realtime.ReconnectPolicy{
		Delay:       cfg.ReconnectDelay,
		MaxAttempts: cfg.MaxReconnectAttempts,
		Exponential: cfg.Exponential,
		MaxDelay:    cfg.MaxReconnectDelay,
		Jitter:      cfg.Jitter,
	}
}

// NewInterviewClient builds the live interview socket client. It does not dial.
func NewInterviewClient(
	cfg config.RealtimeConfig,
	obs ObservabilityContainer,
	onState func(realtime.State),
	logger *slog.Logger,
) *realtime.InterviewClient {
	if logger == nil {
		logger = slog.Default()
	}
	return realtime.NewInterviewClient(realtime.Options{
		URL:           cfg.URL,
		Origin:        cfg.Origin,
		Policy:        ReconnectPolicy(cfg),
		OnStateChange: onState,
		Metrics:       obs.Sink(),
		Logger:        logger,
	})
}
