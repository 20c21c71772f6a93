package config

import (
	"strings"
	"time"
)

// RealtimeConfig configures the interview WebSocket client.
type RealtimeConfig struct {
	// URL is the backend socket endpoint (ws:// or wss://).
	URL string `env:"WS_URL" envDefault:"ws://localhost:8000/ws/interview"`

	// Origin is sent on the handshake; defaults to APP_BASE_URL when empty.
	Origin string `env:"WS_ORIGIN"`

	// ReconnectDelay is the wait before each reconnect attempt.
	ReconnectDelay time.Duration `env:"WS_RECONNECT_DELAY" envDefault:"3s"`

	// MaxReconnectAttempts bounds consecutive reconnect attempts before giving up.
	MaxReconnectAttempts int `env:"WS_RECONNECT_MAX_ATTEMPTS" envDefault:"5"`

	// Exponential doubles the delay after each failed attempt up to MaxReconnectDelay.
	Exponential bool `env:"WS_RECONNECT_EXPONENTIAL" envDefault:"false"`

	// MaxReconnectDelay caps the exponential delay.
	MaxReconnectDelay time.Duration `env:"WS_RECONNECT_MAX_DELAY" envDefault:"30s"`

	// Jitter is the +/- fraction applied to each delay (0 disables).
	Jitter float64 `env:"WS_RECONNECT_JITTER" envDefault:"0"`
}

// Sanitize applies guardrails to realtime configuration values.
func (r *RealtimeConfig) Sanitize() {
	r.URL = strings.TrimSpace(r.URL)
	if r.ReconnectDelay <= 0 {
		r.ReconnectDelay = 3 * time.Second
	}
	if r.MaxReconnectAttempts < 0 {
		r.MaxReconnectAttempts = 0
	}
	if r.MaxReconnectDelay < r.ReconnectDelay {
		r.MaxReconnectDelay = r.ReconnectDelay
	}
	if r.Jitter < 0 {
		r.Jitter = 0
	}
	if r.Jitter > 1 {
		r.Jitter = 1
	}
}
