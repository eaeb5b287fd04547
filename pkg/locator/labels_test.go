package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLabelMap(t *testing.T) {
	t.Run("loads mappings from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.yaml")
		content := "labels:\n  Username: user-name-input\n  Password: pass-word-input\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		labels, err := LoadLabelMap(path)
		require.NoError(t, err)
		assert.Equal(t, "user-name-input", labels["Username"])
		assert.Equal(t, "pass-word-input", labels["Password"])
	})

	t.Run("empty path returns empty map", func(t *testing.T) {
		labels, err := LoadLabelMap("")
		require.NoError(t, err)
		assert.NotNil(t, labels)
		assert.Empty(t, labels)
	})

	t.Run("missing file returns empty map", func(t *testing.T) {
		labels, err := LoadLabelMap(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Empty(t, labels)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.yaml")
		require.NoError(t, os.WriteFile(path, []byte("labels: [not, a, map]"), 0644))

		_, err := LoadLabelMap(path)
		assert.Error(t, err)
	})

	t.Run("file without labels key returns empty map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.yaml")
		require.NoError(t, os.WriteFile(path, []byte("other: value\n"), 0644))

		labels, err := LoadLabelMap(path)
		require.NoError(t, err)
		assert.Empty(t, labels)
	})
}
