package service

import (
	"testing"

	"github.com/prepdeck/prepdeck-web/internal/backend"
	"github.com/prepdeck/prepdeck-web/internal/testutil"
)

// newFakeAPI starts a fake backend and returns options for a client bound
// to it with a static bearer token.
func newFakeAPI(t *testing.T) (*testutil.FakeBackend, APIOptions) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	client := backend.NewClient(backend.Options{
		BaseURL: fb.URL(),
		Session: backend.StaticSession("test-token"),
	})
	return fb, APIOptions{Client: client}
}
