// Package model defines the records exchanged with the prepdeck backend API.
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// User is the backend's view of a signed-in account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Plan      PlanTier  `json:"plan,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FirstName returns the first word of FullName.
func (u User) FirstName() string {
	first, _, _ := strings.Cut(strings.TrimSpace(u.FullName), " ")
	return first
}

// LastName returns everything after the first word of FullName.
func (u User) LastName() string {
	_, last, _ := strings.Cut(strings.TrimSpace(u.FullName), " ")
	return strings.TrimSpace(last)
}

// AuthToken is returned by the login, register and token exchange endpoints.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	User        User   `json:"user"`
}

// Credentials is the body of a password login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present and the email parses.
func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" {
		return errors.New("email and password are required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("email is not valid")
	}
	return nil
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Validate checks the registration fields.
func (r *RegisterRequest) Validate() error {
	creds := Credentials{Email: r.Email, Password: r.Password}
	if err := creds.Validate(); err != nil {
		return err
	}
	r.Email = creds.Email
	r.FullName = strings.TrimSpace(r.FullName)
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// IDTokenExchange trades a social sign-in ID token for a backend token.
type IDTokenExchange struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
}
