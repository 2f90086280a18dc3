package datasync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cermp/anki-ptsi/internal/apkg"
	"github.com/cermp/anki-ptsi/internal/catalog"
	"github.com/cermp/anki-ptsi/internal/deck"
	"github.com/cermp/anki-ptsi/internal/interchange"
	"github.com/cermp/anki-ptsi/internal/media"
)

//go:generate mockgen -source=packager.go -destination=../mocks/datasync/mock_package_writer.go -package=mock_datasync

// PackageWriter serializes one deck into a distributable package at outputPath.
type PackageWriter interface {
	Write(ctx context.Context, pkg apkg.Package, outputPath string) error
}

const packageExt = ".apkg"

// ErrNoCards is returned for a deck file without a single usable card.
var ErrNoCards = errors.New("deck has no cards")

type PackagerOptions struct {
	DecksDirectory    string
	MediaDirectory    string
	PackagesDirectory string
	PreviewsDirectory string
	// PreviewMediaDirectory receives a flat copy of every packaged media file for the previews.
	PreviewMediaDirectory string
	Format                interchange.Format
	SearchDepth           int
}

// Packager builds one package per deck file, with its preview and its entry in the manifest.
type Packager struct {
	writer       PackageWriter
	materializer *media.Materializer
	opts         PackagerOptions
}

func NewPackager(writer PackageWriter, opts PackagerOptions) *Packager {
	return &Packager{
		writer:       writer,
		materializer: media.NewMaterializer(opts.MediaDirectory, opts.SearchDepth),
		opts:         opts,
	}
}

// previewCard is one card of a preview file, with media addressed relative to the preview page.
type previewCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Run packages every deck file the selection matches, then records the card counts in the manifest.
// Manifest entries of packages not rebuilt by this run are kept.
func (p *Packager) Run(ctx context.Context, selection Selection) (*Summary, error) {
	summary := &Summary{}

	files, err := DiscoverDeckFiles(p.opts.DecksDirectory)
	if err != nil {
		return summary, fmt.Errorf("DiscoverDeckFiles() > %w", err)
	}

	built := catalog.Manifest{}
	for _, file := range files {
		path, filename := p.deckFor(file)
		if !selection.Match(file.Rel, path.String()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := p.packageDeck(ctx, file, path, filename)
		result.Err = err
		summary.add(result)
		if err == nil {
			built[filename] = catalog.ManifestEntry{Cards: result.Cards}
		}
	}

	if len(built) == 0 {
		return summary, nil
	}
	manifestPath := filepath.Join(p.opts.PackagesDirectory, catalog.ManifestFile)
	manifest, err := catalog.LoadManifest(manifestPath)
	if err != nil {
		return summary, fmt.Errorf("catalog.LoadManifest() > %w", err)
	}
	manifest.Merge(built)
	if err := manifest.Save(manifestPath); err != nil {
		return summary, fmt.Errorf("Manifest.Save(%s) > %w", manifestPath, err)
	}
	return summary, nil
}

// deckFor returns the deck name and the package filename of a deck file. Files at the root of the decks
// directory belong to the sentinel subject.
func (p *Packager) deckFor(file DeckFile) (deck.Path, string) {
	path := file.DeckPath()
	subject := file.Subject
	if subject == "" {
		subject = path.Subject()
	}
	return path, deck.FilenameFor(subject, path.Title()) + packageExt
}

func (p *Packager) packageDeck(ctx context.Context, file DeckFile, path deck.Path, filename string) (DeckResult, error) {
	identity := path.MediaIdentity()
	result := DeckResult{
		Deck:   path.String(),
		Source: file.Path,
		Output: filepath.Join(p.opts.PackagesDirectory, filename),
	}

	read, err := p.opts.Format.ReadFile(file.Path)
	if err != nil {
		return result, fmt.Errorf("Format.ReadFile(%s) > %w", file.Path, err)
	}
	result.Skipped = read.Skipped

	notes := make([]apkg.Note, 0, len(read.Cards))
	previews := make([]previewCard, 0, len(read.Cards))
	var refs []media.Reference
	for _, card := range read.Cards {
		front := strings.TrimSpace(card.Front)
		back := strings.TrimSpace(card.Back)
		if front == "" && back == "" {
			result.Skipped++
			continue
		}
		refs = append(refs, media.CollectFields(front, back)...)

		front = media.ToPackage(front)
		back = media.ToPackage(back)
		notes = append(notes, apkg.Note{
			Fields: []string{front, back},
			Tags:   card.Tags,
		})
		previews = append(previews, previewCard{
			Front: media.ToPreview(front),
			Back:  media.ToPreview(back),
		})
	}
	if len(notes) == 0 {
		return result, ErrNoCards
	}
	result.Cards = len(notes)

	resolution := p.materializer.ResolveAll(refs, identity)
	result.MediaMissing = resolution.Missing

	copied, err := media.Materialize(resolution.Paths, p.opts.PreviewMediaDirectory)
	result.MediaCopied = copied
	if err != nil {
		slog.Default().Warn("preview media not copied",
			slog.String("deck", result.Deck),
			slog.Any("error", err),
		)
	}

	previewPath := filepath.Join(p.opts.PreviewsDirectory, strings.TrimSuffix(filename, packageExt)+".json")
	if err := writePreview(previewPath, previews); err != nil {
		slog.Default().Warn("preview not written",
			slog.String("path", previewPath),
			slog.Any("error", err),
		)
	}

	pkg := apkg.Package{
		DeckID:     apkg.DeckID(result.Deck),
		DeckName:   result.Deck,
		Notes:      notes,
		MediaPaths: resolution.Paths,
	}
	if err := p.writer.Write(ctx, pkg, result.Output); err != nil {
		return result, fmt.Errorf("PackageWriter.Write(%s) > %w", result.Output, err)
	}
	return result, nil
}

func writePreview(path string, cards []previewCard) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cards); err != nil {
		return fmt.Errorf("json.Encode(%s) > %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}
