package apkg

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cermp/anki-ptsi/internal/database"
)

func readEntries(t *testing.T, path string) map[string][]byte {
	t.Helper()
	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	entries := make(map[string][]byte, len(reader.File))
	for _, file := range reader.File {
		rc, err := file.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[file.Name] = content
	}
	return entries
}

func TestWriter_Write(t *testing.T) {
	mediaDir := t.TempDir()
	photo := filepath.Join(mediaDir, "cinetique", "photo1.jpg")
	duplicate := filepath.Join(mediaDir, "other", "photo1.jpg")
	schema := filepath.Join(mediaDir, "cinetique", "schema.png")
	for path, content := range map[string]string{photo: "jpeg", duplicate: "other jpeg", schema: "png"} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	writer := NewWriter(DefaultModel)
	writer.now = func() time.Time { return time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC) }

	pkg := Package{
		DeckName: "physique::cinetique",
		Notes: []Note{
			{Fields: []string{`<img src="photo1.jpg"> Vitesse ?`, "v = dx/dt"}, Tags: []string{"meca", "cours"}},
			{Fields: []string{"Acc&eacute;l&eacute;ration", `<img src="schema.png">`}},
		},
		MediaPaths: []string{photo, duplicate, schema},
	}
	output := filepath.Join(t.TempDir(), "docs", "physique-cinetique.apkg")

	require.NoError(t, writer.Write(context.Background(), pkg, output))

	entries := readEntries(t, output)
	require.Contains(t, entries, collectionEntry)
	require.Contains(t, entries, mediaEntry)

	var index map[string]string
	require.NoError(t, json.Unmarshal(entries[mediaEntry], &index))
	assert.Equal(t, map[string]string{"0": "photo1.jpg", "1": "schema.png"}, index)
	assert.Equal(t, "jpeg", string(entries["0"]), "the first file with a given name wins")
	assert.Equal(t, "png", string(entries["1"]))

	collectionPath := filepath.Join(t.TempDir(), collectionEntry)
	require.NoError(t, os.WriteFile(collectionPath, entries[collectionEntry], 0644))
	db, err := database.Open(collectionPath)
	require.NoError(t, err)
	defer db.Close()

	var notes []noteRow
	require.NoError(t, db.Select(&notes, "SELECT * FROM notes ORDER BY id"))
	require.Len(t, notes, 2)
	assert.Equal(t, "<img src=\"photo1.jpg\"> Vitesse ?\x1fv = dx/dt", notes[0].Flds)
	assert.Equal(t, " meca cours ", notes[0].Tags)
	assert.Equal(t, "Vitesse ?", notes[0].Sfld)
	assert.Equal(t, "Accélération", notes[1].Sfld)
	assert.Equal(t, fieldChecksum("Vitesse ?"), notes[0].Csum)
	assert.Equal(t, NoteGUID("physique::cinetique", pkg.Notes[0].Fields[0]), notes[0].GUID)
	assert.Equal(t, DefaultModel.ID, notes[0].Mid)

	var cards []cardRow
	require.NoError(t, db.Select(&cards, "SELECT * FROM cards ORDER BY id"))
	require.Len(t, cards, 2)
	for i, card := range cards {
		assert.Equal(t, notes[i].ID, card.Nid)
		assert.Equal(t, DeckID("physique::cinetique"), card.Did)
		assert.Zero(t, card.Queue, "cards start in the new queue")
	}

	var col collectionRow
	require.NoError(t, db.Get(&col, "SELECT * FROM col"))
	assert.Equal(t, 11, col.Ver)

	var decks map[string]deckJSON
	require.NoError(t, json.Unmarshal([]byte(col.Decks), &decks))
	assert.Contains(t, decks, "1")
	deckID := DeckID("physique::cinetique")
	var found bool
	for _, deck := range decks {
		if deck.ID == deckID {
			found = true
			assert.Equal(t, "physique::cinetique", deck.Name)
		}
	}
	assert.True(t, found)

	var models map[string]modelJSON
	require.NoError(t, json.Unmarshal([]byte(col.Models), &models))
	require.Len(t, models, 1)
	for _, model := range models {
		assert.Equal(t, DefaultModel.Name, model.Name)
		require.Len(t, model.Flds, 2)
		assert.Equal(t, "Question", model.Flds[0].Name)
		assert.Equal(t, "{{Question}}", model.Tmpls[0].QFmt)
	}

	leftovers, err := os.ReadDir(filepath.Dir(output))
	require.NoError(t, err)
	assert.Len(t, leftovers, 1, "no temporary file is left next to the package")
}

func TestWriter_Write_Errors(t *testing.T) {
	tests := []struct {
		name    string
		model   Model
		pkg     Package
		wantErr error
	}{
		{
			name:    "empty package",
			model:   DefaultModel,
			pkg:     Package{DeckName: "x"},
			wantErr: ErrEmptyPackage,
		},
		{
			name:  "note with the wrong field count",
			model: DefaultModel,
			pkg:   Package{DeckName: "x", Notes: []Note{{Fields: []string{"only front"}}}},
		},
		{
			name:  "missing media file",
			model: DefaultModel,
			pkg: Package{
				DeckName:   "x",
				Notes:      []Note{{Fields: []string{"a", "b"}}},
				MediaPaths: []string{"/does/not/exist.png"},
			},
		},
		{
			name:  "model with three fields",
			model: Model{ID: 1, Name: "triple", Fields: []string{"a", "b", "c"}},
			pkg:   Package{DeckName: "x", Notes: []Note{{Fields: []string{"a", "b", "c"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "x.apkg")
			err := NewWriter(tt.model).Write(context.Background(), tt.pkg, output)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoFileExists(t, output)
		})
	}
}

func TestDeckID(t *testing.T) {
	assert.Equal(t, DeckID("si::Torseur"), DeckID("si::Torseur"))
	assert.NotEqual(t, DeckID("si::Torseur"), DeckID("si::Cinetique"))
	for _, name := range []string{"", "a", "maths::Derivees", "physique::Derivees"} {
		id := DeckID(name)
		assert.GreaterOrEqual(t, id, int64(1<<30))
		assert.Less(t, id, int64(1<<31))
	}
}

func TestNoteGUID(t *testing.T) {
	assert.Equal(t, NoteGUID("d", "front"), NoteGUID("d", "front"))
	assert.NotEqual(t, NoteGUID("d", "front"), NoteGUID("e", "front"))
	assert.NotEqual(t, NoteGUID("d", "front"), NoteGUID("d", "other"))
}

func TestFieldChecksum(t *testing.T) {
	// sha1 of the empty string starts with da39a3ee
	assert.Equal(t, int64(0xda39a3ee), fieldChecksum(""))
}
