package config

import (
	"fmt"
	"strings"
	"sync"
)

const (
	// SectionIDJira is the identifier for the defect tracker section
	SectionIDJira = "jira"
)

// JiraSection manages the defect-tracker connection settings used by the
// story-driven generation path and defect filing.
type JiraSection struct {
	Endpoint   string
	User       string
	APIToken   string
	ProjectKey string
	FileBugs   bool
	mu         sync.RWMutex
}

// NewJiraSection creates a JIRA section with default settings.
func NewJiraSection() *JiraSection {
	return &JiraSection{}
}

// ID returns the section identifier.
func (s *JiraSection) ID() string {
	return SectionIDJira
}

// Title returns the section title.
func (s *JiraSection) Title() string {
	return "JIRA Settings"
}

// Description returns the section description.
func (s *JiraSection) Description() string {
	return "Defect tracker connection settings. file_bugs enables automatic defect creation when replay verification finds broken locators."
}

// Data returns the current configuration data.
func (s *JiraSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"endpoint":    s.Endpoint,
		"user":        s.User,
		"api_token":   s.APIToken,
		"project_key": s.ProjectKey,
		"file_bugs":   s.FileBugs,
	}
}

// SetData updates the configuration from the provided data.
func (s *JiraSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["endpoint"].(string); ok {
		s.Endpoint = v
	}
	if v, ok := data["user"].(string); ok {
		s.User = v
	}
	if v, ok := data["api_token"].(string); ok {
		s.APIToken = v
	}
	if v, ok := data["project_key"].(string); ok {
		s.ProjectKey = v
	}
	if v, ok := data["file_bugs"].(bool); ok {
		s.FileBugs = v
	}
	return nil
}

// Validate checks the section's current state.
func (s *JiraSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Endpoint != "" && !strings.HasPrefix(s.Endpoint, "http") {
		return fmt.Errorf("endpoint must be an http(s) URL")
	}
	return nil
}

// Configured reports whether the section carries enough settings to
// reach the tracker.
func (s *JiraSection) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Endpoint != "" && s.User != "" && s.APIToken != ""
}

// Reset restores the section to its defaults.
func (s *JiraSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Endpoint = ""
	s.User = ""
	s.APIToken = ""
	s.ProjectKey = ""
	s.FileBugs = false
}
