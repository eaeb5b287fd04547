package config

import "sync"

const (
	// SectionIDGenerator is the identifier for the generator section
	SectionIDGenerator = "generator"
)

// GeneratorSection manages artifact-generation settings.
type GeneratorSection struct {
	OutputDir    string
	PagesImport  string
	LabelMapPath string
	ReuseLogin   bool
	mu           sync.RWMutex
}

// NewGeneratorSection creates a generator section with default settings.
func NewGeneratorSection() *GeneratorSection {
	return &GeneratorSection{
		OutputDir:  "generated",
		ReuseLogin: true,
	}
}

// ID returns the section identifier.
func (s *GeneratorSection) ID() string {
	return SectionIDGenerator
}

// Title returns the section title.
func (s *GeneratorSection) Title() string {
	return "Generator Settings"
}

// Description returns the section description.
func (s *GeneratorSection) Description() string {
	return "Artifact output locations and generation toggles. reuse_login substitutes the canonical configuration-driven login steps when a recording contains a login flow and a login page object already exists."
}

// Data returns the current configuration data.
func (s *GeneratorSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"output_dir":     s.OutputDir,
		"pages_import":   s.PagesImport,
		"label_map_path": s.LabelMapPath,
		"reuse_login":    s.ReuseLogin,
	}
}

// SetData updates the configuration from the provided data.
func (s *GeneratorSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["output_dir"].(string); ok && v != "" {
		s.OutputDir = v
	}
	if v, ok := data["pages_import"].(string); ok {
		s.PagesImport = v
	}
	if v, ok := data["label_map_path"].(string); ok {
		s.LabelMapPath = v
	}
	if v, ok := data["reuse_login"].(bool); ok {
		s.ReuseLogin = v
	}
	return nil
}

// Validate checks the section's current state.
func (s *GeneratorSection) Validate() error {
	return nil
}

// Reset restores the section to its defaults.
func (s *GeneratorSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.OutputDir = "generated"
	s.PagesImport = ""
	s.LabelMapPath = ""
	s.ReuseLogin = true
}
