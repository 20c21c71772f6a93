package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/prepdeck/prepdeck-web/internal/backend"
)

// APIOptions is the dependency set shared by every backend resource service.
type APIOptions struct {
	Client *backend.Client // Required
	Logger *slog.Logger    // Optional
}

// api holds the client and logger and implements the log-and-return
// convention: every failure is logged once here and returned wrapped with
// the operation name. Nothing is retried or cached.
type api struct {
	client *backend.Client
	logger *slog.Logger
}

func newAPI(opts APIOptions, component string) api {
	if opts.Client == nil {
		panic(component + ": backend client is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return api{client: opts.Client, logger: logger.With("component", component)}
}

func (a api) fail(ctx context.Context, op string, err error) error {
	level := slog.LevelError
	if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	a.logger.Log(ctx, level, op+" failed", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

// ErrMissingID is returned before any request when a required id is empty.
var ErrMissingID = errors.New("id is required")

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s %w", kind, ErrMissingID)
	}
	return nil
}

func endpoint(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

func withQuery(p string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return p + "?" + enc
	}
	return p
}
