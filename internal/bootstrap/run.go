package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prepdeck/prepdeck-web/config"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// RunConfig contains what Run needs to start the web front end.
type RunConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// Run connects infrastructure, serves HTTP and blocks until SIGINT/SIGTERM
// or a fatal server error.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Config == nil {
		return errors.New("run config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := connectSessionStore(ctx, cfg.Config, logger)
	obs := BuildObservability(logger, cfg.Config.Observability)

	services := NewServices(&ServiceDeps{
		Config:           cfg.Config,
		RedisClient:      redisClient,
		Observability:    obs,
		OnSessionExpired: LogSessionExpired(logger),
		Logger:           logger,
	})
	server := NewHTTPServer(&HTTPServerConfig{
		Config:        cfg.Config,
		Services:      services,
		Observability: obs,
		Logger:        logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ServeHTTP(gctx, server, logger) })
	runErr := g.Wait()

	var closeErrs []error
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := obs.Close(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("close statsd: %w", err))
	}
	return errors.Join(append([]error{runErr}, closeErrs...)...)
}

// connectSessionStore returns nil when Redis is unreachable; the UI then
// runs without sign-in rather than failing to start.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel support flexible.
func connectSessionStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) redis.UniversalClient {
	client, err := ConnectRedis(ctx, RedisConfig{Redis: cfg.Redis, Logger: logger})
	if err != nil {
		logger.Warn("session store unavailable; sign-in disabled", "error", err)
		return nil
	}
	return client
}
