package redis

import (
	"context"
	"testing"
	"time"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
	"github.com/prepdeck/prepdeck-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	client := testutil.SetupTestRedis(t)
	return NewSessionStore(client, testutil.UniqueKeyPrefix("session"))
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := domainauth.Session{
		ID:          "test-session-1",
		UserID:      "user-123",
		Email:       "user@example.com",
		Role:        domainauth.RoleUser,
		Plan:        "basic",
		AccessToken: "backend-token",
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Role, got.Role)
	assert.Equal(t, "backend-token", got.AccessToken)
	assert.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess := domainauth.Session{ID: "to-delete", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, "to-delete"))

	_, err := store.Get(ctx, "to-delete")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "to-delete"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_RejectsInvalidSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, domainauth.Session{ExpiresAt: time.Now().Add(time.Hour)}))
	assert.Error(t, store.Save(ctx, domainauth.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)}))
}

func TestSessionStore_ExpiredRecordIsCleanedUp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "soon", ExpiresAt: now.Add(time.Hour)}))

	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err := store.Get(ctx, "soon")
	assert.ErrorIs(t, err, ErrNotFound)

	store.now = time.Now
	_, err = store.Get(ctx, "soon")
	assert.ErrorIs(t, err, ErrNotFound)
}
