package config

import (
	"path/filepath"
	"sync"
	"testing"
)

// resetGlobal clears the global manager between tests.
func resetGlobal() {
	globalMu.Lock()
	globalManager = nil
	globalMu.Unlock()
}

func TestInitialize(t *testing.T) {
	t.Run("initializes global manager successfully", func(t *testing.T) {
		tempDir := t.TempDir()
		configPath := filepath.Join(tempDir, "config.json")

		resetGlobal()

		err := Initialize(configPath)
		if err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		if !IsInitialized() {
			t.Error("Global manager should be initialized")
		}

		// Verify sections are registered
		manager := Global()
		for _, id := range []string{SectionIDApp, SectionIDJira, SectionIDGenerator} {
			section, ok := manager.GetSection(id)
			if !ok {
				t.Errorf("%s section not registered", id)
			}
			if section == nil {
				t.Errorf("%s section is nil", id)
			}
		}
	})

	t.Run("loads existing configuration", func(t *testing.T) {
		tempDir := t.TempDir()
		configPath := filepath.Join(tempDir, "config.json")

		resetGlobal()

		if err := Initialize(configPath); err != nil {
			t.Fatalf("first Initialize failed: %v", err)
		}

		app := GetApp()
		if app == nil {
			t.Fatal("GetApp returned nil")
		}
		app.BaseURL = "https://staging.example.com"
		if err := Global().SaveAll(); err != nil {
			t.Fatalf("SaveAll failed: %v", err)
		}

		resetGlobal()

		if err := Initialize(configPath); err != nil {
			t.Fatalf("second Initialize failed: %v", err)
		}

		if got := GetApp().BaseURL; got != "https://staging.example.com" {
			t.Errorf("Expected persisted base URL, got %q", got)
		}
	})
}

func TestGlobal(t *testing.T) {
	t.Run("panics when not initialized", func(t *testing.T) {
		resetGlobal()

		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic from Global before Initialize")
			}
		}()
		Global()
	})
}

func TestIsInitialized(t *testing.T) {
	resetGlobal()

	if IsInitialized() {
		t.Error("Should not be initialized after reset")
	}

	tempDir := t.TempDir()
	if err := Initialize(filepath.Join(tempDir, "config.json")); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if !IsInitialized() {
		t.Error("Should be initialized")
	}
}

func TestSectionAccessors(t *testing.T) {
	t.Run("return nil when not initialized", func(t *testing.T) {
		resetGlobal()

		if GetApp() != nil {
			t.Error("GetApp should return nil before Initialize")
		}
		if GetJira() != nil {
			t.Error("GetJira should return nil before Initialize")
		}
		if GetGenerator() != nil {
			t.Error("GetGenerator should return nil before Initialize")
		}
	})

	t.Run("return typed sections when initialized", func(t *testing.T) {
		resetGlobal()

		tempDir := t.TempDir()
		if err := Initialize(filepath.Join(tempDir, "config.json")); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}

		if GetApp() == nil {
			t.Error("GetApp returned nil")
		}
		if GetJira() == nil {
			t.Error("GetJira returned nil")
		}

		gen := GetGenerator()
		if gen == nil {
			t.Fatal("GetGenerator returned nil")
		}
		if gen.OutputDir != "generated" {
			t.Errorf("Expected default output dir, got %q", gen.OutputDir)
		}
		if !gen.ReuseLogin {
			t.Error("Expected reuse_login default of true")
		}
	})
}

func TestJiraSectionConfigured(t *testing.T) {
	section := NewJiraSection()
	if section.Configured() {
		t.Error("Empty section should not report configured")
	}

	section.Endpoint = "https://example.atlassian.net"
	section.User = "qa@example.com"
	section.APIToken = "token"
	if !section.Configured() {
		t.Error("Section with endpoint, user, and token should report configured")
	}
}

func TestGlobalConfig_ThreadSafety(t *testing.T) {
	resetGlobal()

	tempDir := t.TempDir()
	if err := Initialize(filepath.Join(tempDir, "config.json")); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = GetApp()
			_ = GetJira()
			_ = GetGenerator()
			_ = IsInitialized()
		}()
	}
	wg.Wait()
}
