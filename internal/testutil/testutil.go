// Package testutil provides shared test helpers for creating config files, deck files and media fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file pointing every directory into tmpDir and creates the repository
// directories. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"decks", "media", "docs"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`anki:
  url: http://127.0.0.1:8765
repository:
  decks_directory: %s
  media_directory: %s
  lock_file: %s
outputs:
  packages_directory: %s
  previews_directory: %s
  media_directory: %s
`,
		filepath.Join(tmpDir, "decks"),
		filepath.Join(tmpDir, "media"),
		filepath.Join(tmpDir, ".ankiptsi.lock"),
		filepath.Join(tmpDir, "docs"),
		filepath.Join(tmpDir, "docs", "previews"),
		filepath.Join(tmpDir, "docs", "media"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateDeckFile writes a deck file at decksDir/rel. Each row is joined with the ';' delimiter as is, so rows
// must already be quoted where needed.
func CreateDeckFile(t *testing.T, decksDir, rel string, rows ...string) string {
	t.Helper()

	path := filepath.Join(decksDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	content := strings.Join(rows, "\n")
	if len(rows) > 0 {
		content += "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// CreateMediaFile writes a media file at mediaDir/identity/filename with content derived from its name.
func CreateMediaFile(t *testing.T, mediaDir, identity, filename string) string {
	t.Helper()

	path := filepath.Join(mediaDir, identity, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("media:"+filename), 0644))
	return path
}
