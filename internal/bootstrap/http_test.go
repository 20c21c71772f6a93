package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/prepdeck-web/config"
	"github.com/prepdeck/prepdeck-web/internal/requestid"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNewHTTPServer_Healthz(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Sanitize()

	server := NewHTTPServer(&HTTPServerConfig{Config: cfg, Logger: discardLogger()})
	require.NotNil(t, server)
	assert.Equal(t, ":8080", server.Addr)

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestid.Header), "every response carries a request id")
}

func TestNewHTTPServer_EchoesInboundRequestID(t *testing.T) {
	server := NewHTTPServer(&HTTPServerConfig{Logger: discardLogger()})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestid.Header, "req-123")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestid.Header))
}

func TestRouterServices_SkipsNilServices(t *testing.T) {
	rs := routerServices(&config.AppConfig{}, ServiceContainer{}, discardLogger())

	assert.Nil(t, rs.Auth)
	assert.Nil(t, rs.Billing)
	assert.Nil(t, rs.Prober)
}

func TestServeHTTP_ShutsDownOnCancel(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- ServeHTTP(ctx, server, discardLogger()) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeHTTP_NilServer(t *testing.T) {
	assert.Error(t, ServeHTTP(context.Background(), nil, nil))
}
