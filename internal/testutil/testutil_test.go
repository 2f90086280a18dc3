package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "decks_directory: "+filepath.Join(tmpDir, "decks"))
	assert.Contains(t, string(content), "packages_directory: "+filepath.Join(tmpDir, "docs"))

	for _, d := range []string{"decks", "media", "docs"} {
		info, err := os.Stat(filepath.Join(tmpDir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestCreateDeckFile(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		rows []string
		want string
	}{
		{
			name: "nested file with rows",
			rel:  "si/torseur.csv",
			rows: []string{"front;back;tag", `"a;b";c`},
			want: "front;back;tag\n\"a;b\";c\n",
		},
		{
			name: "empty file",
			rel:  "vide.csv",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := CreateDeckFile(t, dir, tt.rel, tt.rows...)
			assert.Equal(t, filepath.Join(dir, filepath.FromSlash(tt.rel)), path)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(content))
		})
	}
}

func TestCreateMediaFile(t *testing.T) {
	dir := t.TempDir()
	path := CreateMediaFile(t, dir, "cinetique", "photo1.jpg")
	assert.Equal(t, filepath.Join(dir, "cinetique", "photo1.jpg"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "media:photo1.jpg", string(content))
}
