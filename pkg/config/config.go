package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates and initializes the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	// Create file store
	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	// Create manager
	manager := NewManager(store)

	// Register default sections
	if err := manager.RegisterSection(NewAppSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewJiraSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewGeneratorSection()); err != nil {
		return err
	}

	// Load configuration
	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetApp returns the application settings section from global config.
// Returns nil if config is not initialized.
func GetApp() *AppSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDApp)
	if !ok {
		return nil
	}

	app, ok := section.(*AppSection)
	if !ok {
		return nil
	}

	return app
}

// GetJira returns the JIRA settings section from global config.
// Returns nil if config is not initialized.
func GetJira() *JiraSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDJira)
	if !ok {
		return nil
	}

	jira, ok := section.(*JiraSection)
	if !ok {
		return nil
	}

	return jira
}

// GetGenerator returns the generator settings section from global config.
// Returns nil if config is not initialized.
func GetGenerator() *GeneratorSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDGenerator)
	if !ok {
		return nil
	}

	gen, ok := section.(*GeneratorSection)
	if !ok {
		return nil
	}

	return gen
}
