// Package apkg writes single-deck packages the flashcard application can import: a zip holding a SQLite
// collection, a media index and the media files under numbered names.
package apkg

import (
	"archive/zip"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/cermp/anki-ptsi/internal/database"
)

const (
	collectionEntry = "collection.anki2"
	mediaEntry      = "media"
	fieldSeparator  = "\x1f"
)

// ErrEmptyPackage is returned for a package without notes.
var ErrEmptyPackage = errors.New("package has no notes")

var (
	// guidNamespace scopes note GUIDs to this tool.
	guidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://cermp.github.io/anki-ptsi/notes"))
	markupTag     = regexp.MustCompile(`<[^>]*>`)
)

// Model is the two-field note type every package uses.
type Model struct {
	ID           int64
	Name         string
	Fields       []string
	TemplateName string
}

// DefaultModel matches the note type previously published packages were built with, so re-imports update
// existing notes instead of duplicating the note type.
var DefaultModel = Model{
	ID:           1607392319,
	Name:         "PTSI Modele Simple",
	Fields:       []string{"Question", "Reponse"},
	TemplateName: "Carte 1",
}

// Note holds the field values in model order.
type Note struct {
	Fields []string
	Tags   []string
}

// Package is one deck to write.
type Package struct {
	DeckID     int64
	DeckName   string
	Notes      []Note
	MediaPaths []string
}

// DeckID derives a stable deck id from the deck name so rebuilding a package keeps the same deck.
func DeckID(deckName string) int64 {
	sum := sha1.Sum([]byte(deckName))
	return 1<<30 + int64(binary.BigEndian.Uint64(sum[:8])%(1<<30))
}

// NoteGUID derives a stable note id from the deck and the front of the card.
func NoteGUID(deckName, front string) string {
	return uuid.NewSHA1(guidNamespace, []byte(deckName+fieldSeparator+front)).String()
}

func sortField(front string) string {
	return strings.TrimSpace(html.UnescapeString(markupTag.ReplaceAllString(front, "")))
}

// fieldChecksum is the first 8 hex digits of the SHA-1 of the sort field, as an integer.
func fieldChecksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	value, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return value
}

type Writer struct {
	model Model
	now   func() time.Time
}

func NewWriter(model Model) *Writer {
	return &Writer{
		model: model,
		now:   time.Now,
	}
}

// Write builds the package in a temporary directory and moves it to outputPath once complete.
func (w *Writer) Write(ctx context.Context, pkg Package, outputPath string) error {
	if len(w.model.Fields) != 2 {
		return fmt.Errorf("model %s has %d fields, want 2", w.model.Name, len(w.model.Fields))
	}
	if len(pkg.Notes) == 0 {
		return ErrEmptyPackage
	}
	if pkg.DeckID == 0 {
		pkg.DeckID = DeckID(pkg.DeckName)
	}

	workDir, err := os.MkdirTemp("", "apkg-*")
	if err != nil {
		return fmt.Errorf("os.MkdirTemp() > %w", err)
	}
	defer func() {
		_ = os.RemoveAll(workDir)
	}()

	collectionPath := filepath.Join(workDir, collectionEntry)
	if err := w.writeCollection(ctx, collectionPath, pkg); err != nil {
		return fmt.Errorf("writeCollection(%s) > %w", pkg.DeckName, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(outputPath), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := writeArchive(tmp, collectionPath, pkg.MediaPaths); err != nil {
		return fmt.Errorf("writeArchive(%s) > %w", outputPath, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("file.Chmod > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", outputPath, err)
	}
	return nil
}

func (w *Writer) writeCollection(ctx context.Context, path string, pkg Package) error {
	db, err := database.Open(path)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := database.Apply(ctx, db, collectionSchema); err != nil {
		return fmt.Errorf("database.Apply(schema) > %w", err)
	}

	now := w.now()
	seconds := now.Unix()
	col, err := collectionRowFor(w.model, pkg.DeckID, pkg.DeckName, seconds)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.NamedExecContext(ctx, insertCollection, col); err != nil {
		return fmt.Errorf("tx.NamedExecContext(insert col) > %w", err)
	}

	baseID := now.UnixMilli()
	for i, note := range pkg.Notes {
		if len(note.Fields) != len(w.model.Fields) {
			return fmt.Errorf("note %d has %d fields, want %d", i, len(note.Fields), len(w.model.Fields))
		}
		sfld := sortField(note.Fields[0])
		tags := ""
		if len(note.Tags) > 0 {
			tags = " " + strings.Join(note.Tags, " ") + " "
		}

		row := noteRow{
			ID:   baseID + int64(i),
			GUID: NoteGUID(pkg.DeckName, note.Fields[0]),
			Mid:  w.model.ID,
			Mod:  seconds,
			Usn:  -1,
			Tags: tags,
			Flds: strings.Join(note.Fields, fieldSeparator),
			Sfld: sfld,
			Csum: fieldChecksum(sfld),
		}
		if _, err := tx.NamedExecContext(ctx, insertNote, row); err != nil {
			return fmt.Errorf("tx.NamedExecContext(insert note %d) > %w", i, err)
		}

		card := cardRow{
			ID:  baseID + int64(i),
			Nid: row.ID,
			Did: pkg.DeckID,
			Mod: seconds,
			Usn: -1,
			Due: int64(i + 1),
		}
		if _, err := tx.NamedExecContext(ctx, insertCard, card); err != nil {
			return fmt.Errorf("tx.NamedExecContext(insert card %d) > %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("db.Close() > %w", err)
	}
	return nil
}

func writeArchive(out io.Writer, collectionPath string, mediaPaths []string) (err error) {
	archive := zip.NewWriter(out)
	defer func() {
		if closeErr := archive.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("zip.Writer.Close > %w", closeErr)
		}
	}()

	if err := addFile(archive, collectionEntry, collectionPath); err != nil {
		return err
	}

	index := make(map[string]string, len(mediaPaths))
	names := make(map[string]struct{}, len(mediaPaths))
	for _, path := range mediaPaths {
		name := filepath.Base(path)
		if _, ok := names[name]; ok {
			continue
		}
		entry := strconv.Itoa(len(index))
		if err := addFile(archive, entry, path); err != nil {
			return err
		}
		names[name] = struct{}{}
		index[entry] = name
	}

	w, err := archive.Create(mediaEntry)
	if err != nil {
		return fmt.Errorf("zip.Writer.Create(%s) > %w", mediaEntry, err)
	}
	if err := json.NewEncoder(w).Encode(index); err != nil {
		return fmt.Errorf("json.Encode(media) > %w", err)
	}
	return nil
}

func addFile(archive *zip.Writer, entry, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	w, err := archive.CreateHeader(&zip.FileHeader{Name: entry, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("zip.Writer.Create(%s) > %w", entry, err)
	}
	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("io.Copy(%s) > %w", entry, err)
	}
	return nil
}
