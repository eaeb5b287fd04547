package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store provides persistence for configuration data.
type Store interface {
	// Load loads the configuration from disk
	Load() error

	// Save saves the configuration to disk
	Save() error

	// GetSection retrieves configuration data for a specific section
	GetSection(sectionID string) (map[string]interface{}, error)

	// SetSection stores configuration data for a specific section
	SetSection(sectionID string, data map[string]interface{}) error

	// GetAll retrieves all configuration data
	GetAll() (map[string]map[string]interface{}, error)

	// SetAll stores all configuration data
	SetAll(data map[string]map[string]interface{}) error
}

// storeVersion is written into every config file so the on-disk shape
// can evolve without silently misreading older files.
const storeVersion = "1.0"

// configFile is the on-disk shape: a version marker and one generic
// map per registered section (app, jira, generator).
type configFile struct {
	Version  string                            `json:"version"`
	Sections map[string]map[string]interface{} `json:"sections"`
}

// FileStore implements Store using a JSON file. The file carries the
// persisted form of every section, credentials included, so saves go
// through a same-directory temp file with owner-only permissions.
type FileStore struct {
	path     string
	data     map[string]map[string]interface{}
	mu       sync.RWMutex
	version  string
	modified bool
}

// NewFileStore creates a file-backed store at path, loading any
// existing file. If path is empty it defaults to ~/.scribe/config.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".scribe", "config.json")
	}

	store := &FileStore{
		path:    path,
		data:    make(map[string]map[string]interface{}),
		version: storeVersion,
	}

	// A missing file is a first run, not an error.
	if err := store.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return store, nil
}

// Load reads the configuration file into memory. A missing file leaves
// the store empty.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]map[string]interface{})
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file configFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}

	s.version = file.Version
	s.data = file.Sections
	if s.data == nil {
		s.data = make(map[string]map[string]interface{})
	}
	s.modified = false

	return nil
}

// Save writes the configuration atomically: marshal, write a temp file
// beside the target, then rename over it.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw, err := json.MarshalIndent(configFile{
		Version:  s.version,
		Sections: s.data,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, append(raw, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace config file: %w", err)
	}

	s.modified = false
	return nil
}

// GetSection returns a copy of one section's data. An unknown section
// yields an empty map so callers can apply defaults uniformly.
func (s *FileStore) GetSection(sectionID string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySection(s.data[sectionID]), nil
}

// SetSection stages one section's data for the next Save.
func (s *FileStore) SetSection(sectionID string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sectionID] = copySection(data)
	s.modified = true
	return nil
}

// GetAll returns a deep copy of every section.
func (s *FileStore) GetAll() (map[string]map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string]map[string]interface{}, len(s.data))
	for sectionID, sectionData := range s.data {
		all[sectionID] = copySection(sectionData)
	}
	return all, nil
}

// SetAll replaces every section, staging the result for the next Save.
func (s *FileStore) SetAll(data map[string]map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replacement := make(map[string]map[string]interface{}, len(data))
	for sectionID, sectionData := range data {
		replacement[sectionID] = copySection(sectionData)
	}

	s.data = replacement
	s.modified = true
	return nil
}

// IsModified reports whether the store has staged changes not yet saved.
func (s *FileStore) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}

// copySection shallow-copies a section map so callers and the store
// never share mutable state. A nil input yields an empty map.
func copySection(data map[string]interface{}) map[string]interface{} {
	section := make(map[string]interface{}, len(data))
	for k, v := range data {
		section[k] = v
	}
	return section
}
