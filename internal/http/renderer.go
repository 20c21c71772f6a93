package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	httpassets "github.com/prepdeck/prepdeck-web/internal/http/assets"
	assetfuncs "github.com/prepdeck/prepdeck-web/internal/http/templates/assets"
	billingfuncs "github.com/prepdeck/prepdeck-web/internal/http/templates/billing"
	corefuncs "github.com/prepdeck/prepdeck-web/internal/http/templates/core"
)

// AssetResolver aliases the asset resolver so bootstrap only imports httpx.
type AssetResolver = httpassets.AssetResolver

// StaticPrefix is the URL prefix static files are served under.
const StaticPrefix = httpassets.StaticPrefix

// NewAssetResolverFromFS reads manifestPath from fsys.
func NewAssetResolverFromFS(fsys fs.FS, manifestPath string) (*AssetResolver, error) {
	return httpassets.NewAssetResolverFromFS(fsys, manifestPath)
}

// templatePatterns are the globs parsed from the template root.
var templatePatterns = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

const (
	criticalCSSPath     = "css/critical.css"
	fallbackCriticalCSS = ":root{--color-background:#f7f7fb;--color-surface:#fff;--color-text-primary:#1f2233;}"
)

// criticalCSS is inlined into <head>. In dev mode it is reread per render
// so edits show without a restart.
type criticalCSS struct {
	fsys   fs.FS
	reload bool
	logger *slog.Logger

	once   sync.Once
	cached string
}

func (c *criticalCSS) read() string {
	b, err := fs.ReadFile(c.fsys, criticalCSSPath)
	if err != nil {
		c.logger.Warn("critical CSS unavailable, using fallback", "path", criticalCSSPath, "error", err)
		return fallbackCriticalCSS
	}
	return string(b)
}

func (c *criticalCSS) String() string {
	if c == nil || c.fsys == nil {
		return ""
	}
	if c.reload {
		return c.read()
	}
	c.once.Do(func() { c.cached = c.read() })
	return c.cached
}

// TemplateRenderer executes the parsed page, partial and fragment templates.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS    fs.FS          // required
	Resolver      *AssetResolver // maps logical asset names to hashed files
	CriticalCSSFS fs.FS          // holds css/critical.css
	DevMode       bool
	Logger        *slog.Logger
}

// NewTemplateRenderer parses every template under cfg.TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("template renderer: TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	css := &criticalCSS{fsys: cfg.CriticalCSSFS, reload: cfg.DevMode, logger: logger}

	var t *template.Template
	funcs := template.FuncMap{}
	for _, src := range []template.FuncMap{
		corefuncs.Funcs(corefuncs.Deps{Template: &t, ContentTemplateFor: ContentTemplateFor}),
		assetfuncs.Funcs(assetfuncs.Options{Resolver: cfg.Resolver, DevMode: cfg.DevMode, CriticalCSS: css.String}),
		billingfuncs.Funcs(),
	} {
		for name, fn := range src {
			funcs[name] = fn
		}
	}

	t, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS, templatePatterns...)
	if err != nil {
		logger.Error("template parsing failed", "error", err)
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{t: t, logger: logger}, nil
}

// Execute writes the named template into w.
func (r *TemplateRenderer) Execute(w io.Writer, name string, data any) error {
	if err := r.t.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template execution failed", "template", name, "error", err)
		return err
	}
	return nil
}

// Render buffers the named template and only then commits status, so a
// failing template never leaves a half-written response.
func (r *TemplateRenderer) Render(w http.ResponseWriter, name string, status int, data any) error {
	var buf bytes.Buffer
	if err := r.Execute(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("client went away mid-render", "template", name, "error", err)
	}
	return nil
}
