package pages

import "fmt"

// LoginActions are the canonical configuration-driven login steps.
// Generated step definitions bind to these instead of re-emitting a
// hard-coded credential flow when a login-capable page object already
// exists.
type LoginActions struct {
	base *BasePage
}

// NewLoginActions binds the canonical login actions to a session.
func NewLoginActions(session *Session) *LoginActions {
	return &LoginActions{base: NewBasePage(session)}
}

// EnterConfiguredUsername fills the login username field with the
// configured credential.
func (l *LoginActions) EnterConfiguredUsername() error {
	opts := l.base.Session().Options
	if opts.LoginLocators.Username == "" {
		return fmt.Errorf("no username locator configured")
	}
	return l.base.Fill(opts.LoginLocators.Username, opts.Credentials.Username)
}

// EnterConfiguredPassword fills the login password field with the
// configured credential.
func (l *LoginActions) EnterConfiguredPassword() error {
	opts := l.base.Session().Options
	if opts.LoginLocators.Password == "" {
		return fmt.Errorf("no password locator configured")
	}
	return l.base.Fill(opts.LoginLocators.Password, opts.Credentials.Password)
}

// ClickSignIn clicks the login submit element.
func (l *LoginActions) ClickSignIn() error {
	opts := l.base.Session().Options
	if opts.LoginLocators.SignIn == "" {
		return fmt.Errorf("no sign-in locator configured")
	}
	return l.base.Click(opts.LoginLocators.SignIn)
}
