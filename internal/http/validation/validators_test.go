package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Required("Name", 5)
	assert.Equal(t, "Name is required.", v("   "))
	assert.Equal(t, "Name cannot exceed 5 characters.", v("abcdef"))
	assert.Empty(t, v("héllo"))
}

func TestRequiredRange(t *testing.T) {
	v := RequiredRange("Password", 8, 72)
	assert.Equal(t, "Password is required.", v(""))
	assert.Contains(t, v("short"), "between 8 and 72")
	assert.Empty(t, v("long enough"))
	assert.NotEmpty(t, v(strings.Repeat("x", 73)))
}

func TestOptional(t *testing.T) {
	v := Optional("Full name", 3)
	assert.Empty(t, v(""))
	assert.Empty(t, v("Ana"))
	assert.NotEmpty(t, v("Anna"))
}

func TestEmail(t *testing.T) {
	v := Email("Email")
	assert.Empty(t, v(""))
	assert.Empty(t, v("dev@prepdeck.io"))
	assert.Equal(t, "Enter a valid email.", v("not-an-email"))
	assert.NotEmpty(t, v("Dev <dev@prepdeck.io>"), "display names are rejected")
}

func TestOneOf(t *testing.T) {
	v := OneOf("Feature", []string{"mock_interview", "transcription"})
	assert.Empty(t, v("transcription"))
	assert.Equal(t, "Feature must be one of: mock_interview, transcription", v("TRANSCRIPTION"))
}

func TestAPIPath(t *testing.T) {
	v := APIPath("Path")
	cases := map[string]bool{
		"":                      true,
		"/billing/subscription": true,
		"/jobs?limit=5":         true,
		"billing":               false,
		"//evil.example.com/x":  false,
		"/billing/../admin":     false,
		"/jobs list":            false,
		"/jobs#frag":            false,
	}
	for in, ok := range cases {
		assert.Equal(t, ok, v(in) == "", in)
	}
}

func TestFieldValidator(t *testing.T) {
	fv := New().
		Validate("email", "", Required("Email", 254), Email("Email")).
		Validate("password", "secret-password", RequiredRange("Password", 8, 72)).
		Check("email", "ignored, first error wins").
		Check("form", "")

	assert.False(t, fv.Valid())
	assert.Equal(t, map[string]string{"email": "Email is required."}, fv.Errors())
	assert.True(t, New().Valid())
}
