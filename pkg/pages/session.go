// Package pages is the runtime generated page objects build on: a
// browser session wrapping a Playwright page, a BasePage with the
// element-level operations the generated methods delegate to, and the
// canonical configuration-driven login actions.
package pages

import (
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Default values for session operations.
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Credentials are the configured login credentials used by the canonical
// login actions.
type Credentials struct {
	Username string
	Password string
}

// LoginLocators identify the login form elements the canonical login
// actions drive.
type LoginLocators struct {
	Username string
	Password string
	SignIn   string
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// BaseURL is prefixed to relative paths passed to Open
	BaseURL string

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64

	// Credentials and LoginLocators feed the canonical login actions
	Credentials    Credentials
	LoginLocators  LoginLocators
	ViewportWidth  int
	ViewportHeight int
}

// Session is an active browser session. It owns the Playwright instance,
// browser, context, and page, and is threaded explicitly through every
// page object rather than living in package-level state.
type Session struct {
	pw      *playwright.Playwright
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	Options    SessionOptions
	CreatedAt  time.Time
	LastUsedAt time.Time
	CurrentURL string
}

// NewSession installs and starts Playwright, launches a Chromium
// browser, and opens a fresh page.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(opts.Timeout)

	now := time.Now()
	return &Session{
		pw:         pw,
		Browser:    browser,
		Context:    context,
		Page:       page,
		Options:    opts,
		CreatedAt:  now,
		LastUsedAt: now,
	}, nil
}

// touch updates the LastUsedAt timestamp.
func (s *Session) touch() {
	s.LastUsedAt = time.Now()
}

// Close tears the session down in reverse acquisition order. Close
// errors on inner resources are reported but do not stop the teardown.
func (s *Session) Close() error {
	var firstErr error

	if s.Page != nil {
		if err := s.Page.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close page: %w", err)
		}
	}
	if s.Context != nil {
		if err := s.Context.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close context: %w", err)
		}
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close browser: %w", err)
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	}
	return firstErr
}
