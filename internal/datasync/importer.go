package datasync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cermp/anki-ptsi/internal/ankiconnect"
	"github.com/cermp/anki-ptsi/internal/interchange"
	"github.com/cermp/anki-ptsi/internal/media"
)

var (
	// ErrNoModel is returned when the application has no note model to import into.
	ErrNoModel = errors.New("no note model available")
	// ErrModelFields is returned when the chosen note model has fewer than two fields.
	ErrModelFields = errors.New("note model needs at least two fields")
)

type ImporterOptions struct {
	DecksDirectory string
	MediaDirectory string
	Format         interchange.Format
	SearchDepth    int
	// ModelName is the preferred note model. When empty or unknown, the second model is used if there is one,
	// otherwise the first.
	ModelName      string
	DuplicateScope ankiconnect.DuplicateScope
}

// Importer adds the cards of the deck files to the application and uploads the media they reference.
type Importer struct {
	service      ankiconnect.Service
	materializer *media.Materializer
	opts         ImporterOptions
}

func NewImporter(service ankiconnect.Service, opts ImporterOptions) *Importer {
	if opts.DuplicateScope == "" {
		opts.DuplicateScope = ankiconnect.DuplicateScopeDeck
	}
	return &Importer{
		service:      service,
		materializer: media.NewMaterializer(opts.MediaDirectory, opts.SearchDepth),
		opts:         opts,
	}
}

type noteModel struct {
	name   string
	fields []string
}

// Run imports every deck file the selection matches.
func (imp *Importer) Run(ctx context.Context, selection Selection) (*Summary, error) {
	summary := &Summary{}

	if _, err := imp.service.Version(ctx); err != nil {
		return summary, fmt.Errorf("service.Version() > %w", err)
	}
	model, err := imp.chooseModel(ctx)
	if err != nil {
		return summary, err
	}
	files, err := DiscoverDeckFiles(imp.opts.DecksDirectory)
	if err != nil {
		return summary, fmt.Errorf("DiscoverDeckFiles() > %w", err)
	}
	existing, err := imp.service.DeckNames(ctx)
	if err != nil {
		return summary, fmt.Errorf("service.DeckNames() > %w", err)
	}
	decks := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		decks[name] = struct{}{}
	}

	for _, file := range files {
		name := file.DeckPath().String()
		if !selection.Match(file.Rel, name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := imp.importDeck(ctx, file, model, decks)
		if ankiconnect.IsUnreachable(err) {
			return summary, err
		}
		result.Err = err
		summary.add(result)
	}
	return summary, nil
}

func (imp *Importer) chooseModel(ctx context.Context) (noteModel, error) {
	names, err := imp.service.ModelNames(ctx)
	if err != nil {
		return noteModel{}, fmt.Errorf("service.ModelNames() > %w", err)
	}
	name, err := pickModel(names, imp.opts.ModelName)
	if err != nil {
		return noteModel{}, err
	}

	fields, err := imp.service.ModelFieldNames(ctx, name)
	if err != nil {
		return noteModel{}, fmt.Errorf("service.ModelFieldNames(%s) > %w", name, err)
	}
	if len(fields) < 2 {
		return noteModel{}, fmt.Errorf("%w: %s has %d", ErrModelFields, name, len(fields))
	}
	slog.Default().Debug("note model chosen",
		slog.String("model", name),
		slog.Any("fields", fields),
	)
	return noteModel{name: name, fields: fields}, nil
}

func pickModel(names []string, preferred string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoModel
	}
	if preferred != "" {
		if slices.Contains(names, preferred) {
			return preferred, nil
		}
		slog.Default().Warn("preferred note model not found", slog.String("model", preferred))
	}
	if len(names) > 1 {
		return names[1], nil
	}
	return names[0], nil
}

func (imp *Importer) importDeck(ctx context.Context, file DeckFile, model noteModel, decks map[string]struct{}) (DeckResult, error) {
	path := file.DeckPath()
	name := path.String()
	identity := path.MediaIdentity()
	result := DeckResult{
		Deck:   name,
		Source: file.Path,
		Output: name,
	}

	read, err := imp.opts.Format.ReadFile(file.Path)
	if err != nil {
		return result, fmt.Errorf("Format.ReadFile(%s) > %w", file.Path, err)
	}
	result.Skipped = read.Skipped

	notes := make([]ankiconnect.NewNote, 0, len(read.Cards))
	var refs []media.Reference
	for i, card := range read.Cards {
		front := strings.TrimSpace(card.Front)
		back := strings.TrimSpace(card.Back)
		if front == "" && back == "" {
			slog.Default().Warn("skipping empty card",
				slog.String("source", file.Path),
				slog.Int("record", i+1),
			)
			result.Skipped++
			continue
		}
		refs = append(refs, media.CollectFields(front, back)...)

		tags := card.Tags
		if tags == nil {
			tags = []string{}
		}
		notes = append(notes, ankiconnect.NewNote{
			DeckName:  name,
			ModelName: model.name,
			Fields: map[string]string{
				model.fields[0]: media.ToPackage(front),
				model.fields[1]: media.ToPackage(back),
			},
			Tags: tags,
			Options: &ankiconnect.NoteOptions{
				AllowDuplicate: false,
				DuplicateScope: imp.opts.DuplicateScope,
			},
		})
	}

	resolution := imp.materializer.ResolveAll(refs, identity)
	result.MediaMissing = resolution.Missing
	for _, mediaPath := range resolution.Paths {
		if err := imp.storeMedia(ctx, mediaPath); err != nil {
			if ankiconnect.IsUnreachable(err) {
				return result, err
			}
			slog.Default().Warn("media upload failed",
				slog.String("path", mediaPath),
				slog.Any("error", err),
			)
			result.MediaMissing = append(result.MediaMissing, filepath.Base(mediaPath))
			continue
		}
		result.MediaCopied++
	}

	if _, ok := decks[name]; !ok {
		if _, err := imp.service.CreateDeck(ctx, name); err != nil {
			return result, fmt.Errorf("service.CreateDeck(%s) > %w", name, err)
		}
		decks[name] = struct{}{}
	}

	if len(notes) == 0 {
		return result, nil
	}
	return result, imp.addNotes(ctx, notes, &result)
}

func (imp *Importer) storeMedia(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	if _, err := imp.service.StoreMediaFile(ctx, filepath.Base(path), data); err != nil {
		return fmt.Errorf("service.StoreMediaFile(%s) > %w", path, err)
	}
	return nil
}

// addNotes sends the notes in one batch. When the application rejects the batch as a whole, the notes are sent
// one at a time so duplicates can be told apart from other rejections.
func (imp *Importer) addNotes(ctx context.Context, notes []ankiconnect.NewNote, result *DeckResult) error {
	ids, err := imp.service.AddNotes(ctx, notes)
	if err == nil {
		countAdded(ids, result)
		return nil
	}
	var apiErr *ankiconnect.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("service.AddNotes(%s) > %w", result.Deck, err)
	}

	slog.Default().Debug("batch rejected, adding notes one by one",
		slog.String("deck", result.Deck),
		slog.String("reason", apiErr.Message),
	)
	for _, note := range notes {
		ids, err := imp.service.AddNotes(ctx, []ankiconnect.NewNote{note})
		if err == nil {
			countAdded(ids, result)
			continue
		}
		if !errors.As(err, &apiErr) {
			return fmt.Errorf("service.AddNotes(%s) > %w", result.Deck, err)
		}
		if isDuplicate(apiErr) {
			result.Duplicates++
			continue
		}
		slog.Default().Warn("note rejected",
			slog.String("deck", result.Deck),
			slog.String("reason", apiErr.Message),
		)
		result.Rejected++
	}
	return nil
}

// countAdded counts null ids as duplicates, which is how the application reports notes it did not add.
func countAdded(ids []*int64, result *DeckResult) {
	for _, id := range ids {
		if id == nil {
			result.Duplicates++
			continue
		}
		result.Cards++
	}
}

func isDuplicate(err *ankiconnect.APIError) bool {
	return strings.Contains(strings.ToLower(err.Message), "duplicate")
}
