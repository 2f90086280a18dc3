package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecksTemplate(t *testing.T) {
	tests := []struct {
		name         string
		templatePath string

		wantTemplateName string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.html.tmpl")
				content := `{{ range .Subjects }}{{ .Name }}:{{ range .Decks }}{{ .Name }}{{ end }};{{ end }}`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			}(t),
			wantTemplateName: "custom.html.tmpl",
		},
		{
			name:             "uses embedded template when file doesn't exist",
			templatePath:     "/non/existent/decks.html.tmpl",
			wantTemplateName: decksTemplateName,
		},
		{
			name:             "uses embedded template when no override is configured",
			templatePath:     "",
			wantTemplateName: decksTemplateName,
		},
		{
			name: "uses embedded template when filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "invalid.html.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Bad: {{ .Unclosed`), 0644))
				return templatePath
			}(t),
			wantTemplateName: decksTemplateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecksTemplate(tt.templatePath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, got.Name())
		})
	}
}

func TestWriteDecksPage(t *testing.T) {
	generated := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("renders subjects and decks", func(t *testing.T) {
		page := DecksPage{
			Subjects: []DeckSubject{
				{Name: "Maths", Decks: []DeckCard{
					{Name: "Dérivées & intégrales", Size: "1.2 KiB", Date: "01/09/2024", URL: "maths-derivees.apkg", Cards: 12},
				}},
				{Name: "Si", Decks: []DeckCard{
					{Name: "Torseur", Size: "800 B", Date: "02/09/2024", URL: "si-torseur.apkg"},
				}},
			},
			TotalDecks:    2,
			TotalSubjects: 2,
			Generated:     generated,
		}

		var buf bytes.Buffer
		require.NoError(t, WriteDecksPage(&buf, "", page))
		output := buf.String()

		assert.Contains(t, output, `<strong>2</strong> Decks`)
		assert.Contains(t, output, `<h2 class="subject-title">Maths</h2>`)
		assert.Contains(t, output, `Dérivées &amp; intégrales`)
		assert.Contains(t, output, `<span>12 cartes</span>`)
		assert.Contains(t, output, `href="si-torseur.apkg"`)
		assert.Contains(t, output, "Mis à jour le 01/09/2024")
		assert.NotContains(t, output, "Aucun deck disponible")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("Maths")), bytes.Index(buf.Bytes(), []byte(">Si<")))
	})

	t.Run("renders the empty state", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteDecksPage(&buf, "", DecksPage{Generated: generated}))
		assert.Contains(t, buf.String(), "Aucun deck disponible")
		assert.NotContains(t, buf.String(), "deck-card")
	})
}
