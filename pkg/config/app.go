package config

import (
	"fmt"
	"net/url"
	"sync"
)

const (
	// SectionIDApp is the identifier for the application settings section
	SectionIDApp = "app"
)

// AppSection manages the application-wide settings: the environment base
// URL, the credentials and login-form locators the canonical login steps
// use, and the browser toggles.
type AppSection struct {
	BaseURL          string
	Username         string
	Password         string
	UsernameLocator  string
	PasswordLocator  string
	SignInLocator    string
	Headless         bool
	VerifyAfterwards bool
	mu               sync.RWMutex
}

// NewAppSection creates an app section with default settings.
func NewAppSection() *AppSection {
	return &AppSection{
		Headless: true,
	}
}

// ID returns the section identifier.
func (s *AppSection) ID() string {
	return SectionIDApp
}

// Title returns the section title.
func (s *AppSection) Title() string {
	return "Application Settings"
}

// Description returns the section description.
func (s *AppSection) Description() string {
	return "Environment base URL, login credentials and locators, and browser toggles. verify_afterwards replays generated actions against a live browser after generation."
}

// Data returns the current configuration data.
func (s *AppSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"base_url":          s.BaseURL,
		"username":          s.Username,
		"password":          s.Password,
		"username_locator":  s.UsernameLocator,
		"password_locator":  s.PasswordLocator,
		"sign_in_locator":   s.SignInLocator,
		"headless":          s.Headless,
		"verify_afterwards": s.VerifyAfterwards,
	}
}

// SetData updates the configuration from the provided data.
func (s *AppSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["base_url"].(string); ok {
		s.BaseURL = v
	}
	if v, ok := data["username"].(string); ok {
		s.Username = v
	}
	if v, ok := data["password"].(string); ok {
		s.Password = v
	}
	if v, ok := data["username_locator"].(string); ok {
		s.UsernameLocator = v
	}
	if v, ok := data["password_locator"].(string); ok {
		s.PasswordLocator = v
	}
	if v, ok := data["sign_in_locator"].(string); ok {
		s.SignInLocator = v
	}
	if v, ok := data["headless"].(bool); ok {
		s.Headless = v
	}
	if v, ok := data["verify_afterwards"].(bool); ok {
		s.VerifyAfterwards = v
	}
	return nil
}

// Validate checks the section's current state.
func (s *AppSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.BaseURL != "" {
		if _, err := url.Parse(s.BaseURL); err != nil {
			return fmt.Errorf("base_url is not a valid URL: %w", err)
		}
	}
	return nil
}

// Reset restores the section to its defaults.
func (s *AppSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.BaseURL = ""
	s.Username = ""
	s.Password = ""
	s.UsernameLocator = ""
	s.PasswordLocator = ""
	s.SignInLocator = ""
	s.Headless = true
	s.VerifyAfterwards = false
}
