// Package validation checks browser form input before it reaches a service,
// producing per-field messages for re-rendered forms.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty and does not exceed maxLen characters.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// RequiredRange validates that a field is present and between minLen and maxLen characters.
// Passwords are not trimmed, so callers pass them as-is.
func RequiredRange(fieldName string, minLen, maxLen int) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fieldName + " is required."
		}
		n := utf8.RuneCountInString(v)
		if n < minLen || n > maxLen {
			return fmt.Sprintf("%s must be between %d and %d characters.", fieldName, minLen, maxLen)
		}
		return ""
	}
}

// Optional validates that an optional field does not exceed maxLen characters if provided.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Email validates a single bare address. Empty values pass; pair with Required.
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return "Enter a valid " + strings.ToLower(fieldName) + "."
		}
		return ""
	}
}

// OneOf validates that a field matches one of the provided options exactly.
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		for _, opt := range options {
			if v == opt {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// APIPath validates a backend path for the admin probe: absolute, no
// traversal, no scheme or host.
func APIPath(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			return ""
		case !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//"):
			return fieldName + " must start with a single /."
		case strings.Contains(v, ".."):
			return fieldName + " cannot contain \"..\"."
		case strings.ContainsAny(v, " \t\r\n#"):
			return fieldName + " has an invalid format."
		}
		return ""
	}
}

// FieldValidator collects the first error per field.
type FieldValidator struct {
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate runs validators against value, stopping at the first failure.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Check records msg for field when it is non-empty and the field has no error yet.
func (fv *FieldValidator) Check(field, msg string) *FieldValidator {
	if msg != "" {
		if _, exists := fv.errors[field]; !exists {
			fv.errors[field] = msg
		}
	}
	return fv
}

// Valid reports whether no errors were recorded.
func (fv *FieldValidator) Valid() bool { return len(fv.errors) == 0 }

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}
