package config

import (
	"strings"
	"time"
)

const defaultBackendBaseURL = "http://localhost:8000/api"

// BackendConfig configures the REST client used for every backend call.
type BackendConfig struct {
	// BaseURL is the backend API root; endpoint paths are appended to it.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api"`

	// Timeout bounds a single request including reading the body.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// MaxUploadBytes caps resume uploads accepted by the UI before forwarding.
	MaxUploadBytes int64 `env:"API_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.BaseURL == "" {
		b.BaseURL = defaultBackendBaseURL
	}
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
	if b.MaxUploadBytes <= 0 {
		b.MaxUploadBytes = 10 << 20
	}
}
