package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// BasePage carries the element-level operations generated page objects
// delegate to. Generated types embed it and add one method per recorded
// interaction.
type BasePage struct {
	session *Session
}

// NewBasePage binds a base page to a browser session.
func NewBasePage(session *Session) *BasePage {
	return &BasePage{session: session}
}

// Session returns the underlying browser session.
func (p *BasePage) Session() *Session {
	return p.session
}

// Open navigates to a URL. Relative paths are resolved against the
// session's configured base URL.
func (p *BasePage) Open(url string) error {
	p.session.touch()

	if !strings.Contains(url, "://") && p.session.Options.BaseURL != "" {
		url = strings.TrimRight(p.session.Options.BaseURL, "/") + "/" + strings.TrimLeft(url, "/")
	}

	if _, err := p.session.Page.Goto(url); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	p.session.CurrentURL = p.session.Page.URL()
	return nil
}

// Click clicks the first element matching the locator.
func (p *BasePage) Click(locator string) error {
	p.session.touch()
	if err := p.session.Page.Locator(locator).First().Click(); err != nil {
		return fmt.Errorf("click on %q failed: %w", locator, err)
	}
	return nil
}

// Fill types a value into the first element matching the locator.
func (p *BasePage) Fill(locator, value string) error {
	p.session.touch()
	if err := p.session.Page.Locator(locator).First().Fill(value); err != nil {
		return fmt.Errorf("fill on %q failed: %w", locator, err)
	}
	return nil
}

// Select chooses an option by value from the first matching select
// element.
func (p *BasePage) Select(locator, value string) error {
	p.session.touch()
	_, err := p.session.Page.Locator(locator).First().SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return fmt.Errorf("select on %q failed: %w", locator, err)
	}
	return nil
}

// Check checks the first element matching the locator.
func (p *BasePage) Check(locator string) error {
	p.session.touch()
	if err := p.session.Page.Locator(locator).First().Check(); err != nil {
		return fmt.Errorf("check on %q failed: %w", locator, err)
	}
	return nil
}

// Press sends a key press to the first element matching the locator.
func (p *BasePage) Press(locator, key string) error {
	p.session.touch()
	if err := p.session.Page.Locator(locator).First().Press(key); err != nil {
		return fmt.Errorf("press %q on %q failed: %w", key, locator, err)
	}
	return nil
}

// Count returns the number of elements matching the locator.
func (p *BasePage) Count(locator string) (int, error) {
	p.session.touch()
	count, err := p.session.Page.Locator(locator).Count()
	if err != nil {
		return 0, fmt.Errorf("count of %q failed: %w", locator, err)
	}
	return count, nil
}
