package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Recorded is one request seen by FakeBackend.
type Recorded struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          []byte
}

// FakeBackend is an httptest server speaking the backend's envelope format.
// Routes are keyed by "METHOD /path" (no query string).
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Recorded
}

// NewFakeBackend starts a server that is closed on test cleanup.
func NewFakeBackend(t TestingTB) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{routes: map[string]http.HandlerFunc{}}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL is the base URL to configure clients with.
func (f *FakeBackend) URL() string { return f.Server.URL }

// Handle registers h for "METHOD /path".
func (f *FakeBackend) Handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = h
}

// OK answers route with {"success":true,"data":data}.
func (f *FakeBackend) OK(route string, data any) {
	f.Handle(route, func(w http.ResponseWriter, _ *http.Request) {
		WriteEnvelope(w, http.StatusOK, data)
	})
}

// Fail answers route with status and {"success":false,"error":msg}; an empty
// msg sends no body.
func (f *FakeBackend) Fail(route string, status int, msg string) {
	f.Handle(route, func(w http.ResponseWriter, _ *http.Request) {
		if msg == "" {
			w.WriteHeader(status)
			return
		}
		WriteJSON(w, status, map[string]any{"success": false, "error": msg})
	})
}

// Requests returns a copy of every request received so far.
func (f *FakeBackend) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Recorded(nil), f.requests...)
}

// Last returns the most recent request; ok is false when none arrived.
func (f *FakeBackend) Last() (Recorded, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Recorded{}, false
	}
	return f.requests[len(f.requests)-1], true
}

// Count returns how many requests hit route.
func (f *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, Recorded{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "no route " + r.URL.Path})
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	h(w, r)
}

// WriteEnvelope writes a success envelope around data.
func WriteEnvelope(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, map[string]any{"success": true, "data": data})
}

// WriteJSON writes v as JSON with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
