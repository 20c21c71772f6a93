package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	assert.False(t, IsHTMX(r))
	assert.False(t, WantsPartial(r))

	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-Target", "main-content")
	assert.True(t, IsHTMX(r))
	assert.True(t, WantsPartial(r))
	assert.Equal(t, "main-content", HXTarget(r))

	r.Header.Set("Hx-History-Restore-Request", "true")
	assert.True(t, IsHistoryRestore(r))
	assert.False(t, WantsPartial(r), "history restores need the full document")
}

func TestSetHXTrigger(t *testing.T) {
	w := httptest.NewRecorder()
	SetHXTrigger(w, "plans:loaded", nil)
	assert.JSONEq(t, `{"plans:loaded":true}`, w.Header().Get("Hx-Trigger"))

	w = httptest.NewRecorder()
	triggerToast(w, "Subscription canceled", "success")
	var got map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("Hx-Trigger")), &got))
	assert.Equal(t, "Subscription canceled", got["showToast"]["message"])

	w = httptest.NewRecorder()
	triggerToast(w, "Thanks!", "success")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": "/billing"})
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("Hx-Trigger")), &map[string]any{}))
	assert.Contains(t, w.Header().Get("Hx-Trigger"), `"showToast"`, "earlier events are kept")
	assert.Contains(t, w.Header().Get("Hx-Trigger"), `"nav:activate"`)

	w = httptest.NewRecorder()
	SetHXTrigger(w, "bad", func() {})
	assert.Equal(t, `{"bad":true}`, w.Header().Get("Hx-Trigger"))
}

func TestHTMXResponse(t *testing.T) {
	w := httptest.NewRecorder()
	HTMX(w).Trigger("refresh", nil).PushURL("/billing?tab=history").Retarget("#panel").Reswap("outerHTML")
	assert.Equal(t, http.StatusOK, w.Code, "chainable setters do not write a status")
	assert.Equal(t, "/billing?tab=history", w.Header().Get("Hx-Push-Url"))
	assert.Equal(t, "#panel", w.Header().Get("Hx-Retarget"))
	assert.Equal(t, "outerHTML", w.Header().Get("Hx-Reswap"))

	w = httptest.NewRecorder()
	HTMX(w).Redirect("https://pay.example.com/c/1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://pay.example.com/c/1", w.Header().Get("Hx-Redirect"))
}

func TestNavigate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/billing/checkout", nil)
	w := httptest.NewRecorder()
	navigate(w, r, "/billing")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/billing", w.Header().Get("Location"))

	r.Header.Set("Hx-Request", "true")
	w = httptest.NewRecorder()
	navigate(w, r, "/billing")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/billing", w.Header().Get("Hx-Redirect"))
}
