package viewmodel

// AuthPage backs the sign-in and sign-up forms.
type AuthPage struct {
	Layout

	// Mode is "login" or "register".
	Mode        string
	Email       string
	FullName    string
	RedirectURI string
	Error       string
	FieldErrors map[string]string
	// SocialLogin shows the "continue with" button when a provider is configured.
	SocialLogin bool
}

// LayoutData returns a pointer to the embedded layout for renderer helpers.
func (p *AuthPage) LayoutData() *Layout { return &p.Layout }

// ErrorPage is the standalone error screen (404, 403, template failures).
type ErrorPage struct {
	Layout

	Code        string
	Message     string
	ShowLogin   bool
	RedirectURI string
}

// LayoutData returns a pointer to the embedded layout for renderer helpers.
func (p *ErrorPage) LayoutData() *Layout { return &p.Layout }

// SignedOutPage is shown after logout and after the backend rejects a session.
type SignedOutPage struct {
	Title       string
	RedirectURI string
	Expired     bool
}
