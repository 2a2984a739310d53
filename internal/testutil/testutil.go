// Package testutil provides shared test helpers for creating config files and fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{
		"logs",
		filepath.Join("audio", "contributions"),
		filepath.Join("audio", "translations"),
	}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`store:
  driver: file
  file: %s
logs:
  contributions_file: %s
  translations_file: %s
audio:
  contributions_directory: %s
  translations_directory: %s
`,
		filepath.Join(tmpDir, "phrases_db.json"),
		filepath.Join(tmpDir, "logs", "contributions.yml"),
		filepath.Join(tmpDir, "logs", "translations.yml"),
		filepath.Join(tmpDir, "audio", "contributions"),
		filepath.Join(tmpDir, "audio", "translations"),
	)

	configFile := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))
	return configFile
}
