package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Anki: AnkiConfig{
			URL:            "http://localhost:8765",
			Version:        6,
			TimeoutSeconds: 30,
		},
		Repository: RepositoryConfig{
			DecksDirectory: "decks",
			MediaDirectory: "media",
			LockFile:       ".ankiptsi.lock",
		},
		Interchange: InterchangeConfig{
			Delimiter: ";",
			WriteBOM:  true,
		},
		Media: MediaConfig{
			SearchDepth: 8,
		},
		Outputs: OutputsConfig{
			PackagesDirectory: "docs",
			PreviewsDirectory: filepath.Join("docs", "previews"),
			MediaDirectory:    filepath.Join("docs", "media"),
		},
		Packages: PackagesConfig{
			ModelID:    1607392319,
			ModelName:  "PTSI Modele Simple",
			FieldNames: []string{"Question", "Reponse"},
		},
		Site: SiteConfig{
			BaseURL: "https://cermp.github.io/anki-ptsi/",
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "empty file uses defaults",
			configContent: ``,
			want:          defaultConfig,
		},
		{
			name: "custom values",
			configContent: `anki:
  url: http://127.0.0.1:9999
  retry_attempts: 2
  media_directory: /tmp/collection.media
repository:
  decks_directory: cards
interchange:
  delimiter: "|"
  write_bom: false
media:
  search_depth: 2
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Anki.URL = "http://127.0.0.1:9999"
				cfg.Anki.RetryAttempts = 2
				cfg.Anki.MediaDirectory = "/tmp/collection.media"
				cfg.Repository.DecksDirectory = "cards"
				cfg.Interchange.Delimiter = "|"
				cfg.Interchange.WriteBOM = false
				cfg.Media.SearchDepth = 2
				return cfg
			},
		},
		{
			name:          "environment variables override the service address and key",
			configContent: ``,
			env: map[string]string{
				"ANKI_CONNECT_URL": "http://anki.local:8765",
				"ANKI_CONNECT_KEY": "secret",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Anki.URL = "http://anki.local:8765"
				cfg.Anki.APIKey = "secret"
				return cfg
			},
		},
		{
			name: "comma delimiter is rejected",
			configContent: `interchange:
  delimiter: ","
`,
			wantErrorContains: []string{"invalid configuration", "interchange.delimiter must be a single character"},
		},
		{
			name: "multi character delimiter is rejected",
			configContent: `interchange:
  delimiter: ";;"
`,
			wantErrorContains: []string{"interchange.delimiter"},
		},
		{
			name: "invalid service address",
			configContent: `anki:
  url: not a url
`,
			wantErrorContains: []string{"anki.url"},
		},
		{
			name: "missing listing template",
			configContent: `site:
  template: /does/not/exist.tmpl
`,
			wantErrorContains: []string{"site.template must be an existing and readable file"},
		},
		{
			name: "invalid YAML format",
			configContent: `anki:
  url: http://localhost
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ANKI_CONNECT_URL", "")
			t.Setenv("ANKI_CONNECT_KEY", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			configFile := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)
			got, err := loader.Load()
			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfigLoader_Load_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8765", got.Anki.URL)
	assert.Equal(t, "decks", got.Repository.DecksDirectory)
}

func TestInterchangeConfig_DelimiterRune(t *testing.T) {
	assert.Equal(t, ';', InterchangeConfig{Delimiter: ";"}.DelimiterRune())
	assert.Equal(t, '\t', InterchangeConfig{Delimiter: "\t"}.DelimiterRune())
	assert.Equal(t, ';', InterchangeConfig{}.DelimiterRune())
}
