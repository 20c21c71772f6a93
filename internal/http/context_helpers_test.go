package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/prepdeck/prepdeck-web/internal/domain/auth"
)

func TestSetSessionInContext_Nil(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, SetSessionInContext(ctx, nil))
	assert.Nil(t, GetSessionFromContext(ctx))
}

func TestSignedInSession(t *testing.T) {
	tests := []struct {
		name    string
		session *domainauth.Session
		want    bool
	}{
		{name: "no session"},
		{name: "guest", session: &domainauth.Session{ID: "g", Role: domainauth.RoleGuest}},
		{name: "user", session: &domainauth.Session{ID: "u", Role: domainauth.RoleUser}, want: true},
		{name: "admin", session: &domainauth.Session{ID: "a", Role: domainauth.RoleAdmin}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := signedInSession(SetSessionInContext(context.Background(), tt.session))
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Same(t, tt.session, s)
			} else {
				assert.Nil(t, s)
			}
		})
	}
}
