package auth

import (
	"testing"
	"time"
)

func TestSession_IsGuest(t *testing.T) {
	s := Session{Role: RoleGuest}
	if !s.IsGuest() {
		t.Fatalf("expected guest")
	}
	if (Session{Role: RoleUser}).IsGuest() {
		t.Fatalf("did not expect guest")
	}
}

func TestSession_IsAdmin(t *testing.T) {
	if !(Session{Role: RoleAdmin}).IsAdmin() {
		t.Fatalf("expected admin")
	}
	if (Session{Role: RoleUser}).IsAdmin() {
		t.Fatalf("did not expect admin")
	}
}

func TestSession_DisplayName(t *testing.T) {
	if got := (Session{FirstName: "Ada", Email: "ada@example.com"}).DisplayName(); got != "Ada" {
		t.Fatalf("expected first name, got %q", got)
	}
	if got := (Session{Email: "ada@example.com"}).DisplayName(); got != "ada@example.com" {
		t.Fatalf("expected email fallback, got %q", got)
	}
}

func TestIdentity_SimpleFields(t *testing.T) {
	id := Identity{UserID: "u", Email: "e", IDToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	if id.UserID != "u" || id.Email != "e" || id.IDToken != "tok" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
