package httpx

import (
	"bytes"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_LoadTemplates(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	require.NotNil(t, tr)

	names := map[string]bool{}
	for _, tmpl := range tr.t.Templates() {
		names[tmpl.Name()] = true
	}
	for _, want := range []string{"layout", "content", "error-layout", "signed-out-page", "panel-error"} {
		assert.True(t, names[want], "template %s should be loaded", want)
	}
	for page, content := range ContentTemplateMap() {
		assert.True(t, names[content], "page %s maps to missing template %s", page, content)
	}
}

func TestContentTemplateFor(t *testing.T) {
	assert.Equal(t, "billing-content", ContentTemplateFor(PageBilling))
	assert.Equal(t, "permissions-content", ContentTemplateFor(PagePermissions))
	assert.Equal(t, "landing-content", ContentTemplateFor("nope"))
}

func TestTemplateHelpers_RenderSection(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	cloned, err := tr.t.Clone()
	require.NoError(t, err)
	cloned, err = cloned.Parse(`{{define "probe"}}{{ renderSection .Page .Data }}{{end}}`)
	require.NoError(t, err)

	render := func(page string) string {
		var buf bytes.Buffer
		require.NoError(t, cloned.ExecuteTemplate(&buf, "probe", map[string]any{"Page": page, "Data": map[string]any{}}))
		return buf.String()
	}

	assert.Contains(t, render(PagePermissions), `hx-post="/permissions/check"`)
	assert.Contains(t, render("nope"), "Walk into your next interview ready.", "unknown pages fall back to landing")
}

func TestTemplateRenderer_Render(t *testing.T) {
	tr := &TemplateRenderer{
		t:      template.Must(template.New("root").Parse(`{{define "ok"}}<p>{{.}}</p>{{end}}{{define "bad"}}{{.Missing.Field}}{{end}}`)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	w := httptest.NewRecorder()
	require.NoError(t, tr.Render(w, "ok", http.StatusUnprocessableEntity, "hi"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<p>hi</p>", w.Body.String())

	w = httptest.NewRecorder()
	require.Error(t, tr.Render(w, "bad", http.StatusOK, "not a struct"))
	assert.Empty(t, w.Body.String(), "failed renders write nothing")
	assert.Empty(t, w.Header().Get("Content-Type"))
}

func TestCriticalCSS(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fsys := fstest.MapFS{criticalCSSPath: {Data: []byte("body{margin:0}")}}

	cached := &criticalCSS{fsys: fsys, logger: logger}
	assert.Equal(t, "body{margin:0}", cached.String())
	fsys[criticalCSSPath] = &fstest.MapFile{Data: []byte("body{margin:1px}")}
	assert.Equal(t, "body{margin:0}", cached.String(), "production reads once")

	live := &criticalCSS{fsys: fsys, reload: true, logger: logger}
	assert.Equal(t, "body{margin:1px}", live.String())

	missing := &criticalCSS{fsys: fstest.MapFS{}, logger: logger}
	assert.Equal(t, fallbackCriticalCSS, missing.String())

	var none *criticalCSS
	assert.Empty(t, none.String())
}
