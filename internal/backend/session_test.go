package backend

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySession(t *testing.T) {
	var changes []string
	s := NewMemorySession("a")
	s.OnChange = func(tok string) { changes = append(changes, tok) }

	assert.True(t, s.SignedIn())
	s.Set("b")
	assert.Equal(t, "b", s.AccessToken(context.Background()))

	s.Invalidate(context.Background())
	assert.False(t, s.SignedIn())
	assert.Equal(t, []string{"b", ""}, changes)
}

func TestSessionFromContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), StaticSession("x"))
	s, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "x", s.AccessToken(ctx))
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)

	info, err := InspectToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(exp))

	now := time.Now()
	assert.True(t, TokenExpiry(tok, time.Minute, now).Equal(exp))
}

func TestTokenExpiryFallback(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(2*time.Hour), TokenExpiry("opaque-token", 2*time.Hour, now))
	assert.Equal(t, now.Add(time.Hour), TokenExpiry("", time.Hour, now))

	_, err := InspectToken("")
	assert.Error(t, err)
}

func TestEnvelopeResult(t *testing.T) {
	v, err := Envelope[int]{Success: true, Data: 7}.Result()
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = Envelope[int]{Message: "nope"}.Result()
	assert.EqualError(t, err, "nope")

	_, err = Envelope[int]{}.Result()
	assert.EqualError(t, err, "request failed")
}
