package datasync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cermp/anki-ptsi/internal/ankiconnect"
	"github.com/cermp/anki-ptsi/internal/deck"
	"github.com/cermp/anki-ptsi/internal/interchange"
	"github.com/cermp/anki-ptsi/internal/media"
)

// ErrEmptyFilename is returned for a deck whose name leaves nothing once slugged.
var ErrEmptyFilename = errors.New("deck name has no usable characters for a file name")

type ExporterOptions struct {
	DecksDirectory string
	MediaDirectory string
	// PrivateMediaDirectory overrides the media folder reported by the application.
	PrivateMediaDirectory string
	Format                interchange.Format
}

// Exporter writes the decks of the application into deck files and copies their media into the media tree.
type Exporter struct {
	service ankiconnect.Service
	opts    ExporterOptions
}

func NewExporter(service ankiconnect.Service, opts ExporterOptions) *Exporter {
	return &Exporter{
		service: service,
		opts:    opts,
	}
}

// Run exports every deck the selection matches.
func (e *Exporter) Run(ctx context.Context, selection Selection) (*Summary, error) {
	summary := &Summary{}

	if _, err := e.service.Version(ctx); err != nil {
		return summary, fmt.Errorf("service.Version() > %w", err)
	}
	names, err := e.service.DeckNames(ctx)
	if err != nil {
		return summary, fmt.Errorf("service.DeckNames() > %w", err)
	}
	sort.Strings(names)

	privateStore, err := e.privateStore(ctx)
	if err != nil {
		return summary, err
	}

	for _, name := range names {
		if !selection.Match(name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := e.exportDeck(ctx, name, privateStore)
		if ankiconnect.IsUnreachable(err) {
			return summary, err
		}
		result.Err = err
		summary.add(result)
	}
	return summary, nil
}

// privateStore returns the application's media folder, or "" when the application cannot tell.
func (e *Exporter) privateStore(ctx context.Context) (string, error) {
	if e.opts.PrivateMediaDirectory != "" {
		return e.opts.PrivateMediaDirectory, nil
	}
	dir, err := e.service.MediaDirPath(ctx)
	if ankiconnect.IsUnreachable(err) {
		return "", fmt.Errorf("service.MediaDirPath() > %w", err)
	}
	if err != nil {
		slog.Default().Warn("media folder unknown, media will not be copied", slog.Any("error", err))
		return "", nil
	}
	return dir, nil
}

// OutputPath is where the deck file of a deck is written: one folder per subject, one file per deck.
func (e *Exporter) OutputPath(path deck.Path) string {
	return filepath.Join(e.opts.DecksDirectory, path.Subject(), path.Stem()+".csv")
}

func (e *Exporter) exportDeck(ctx context.Context, name, privateStore string) (DeckResult, error) {
	path := deck.SplitPath(name, deck.Separator)
	identity := path.MediaIdentity()
	result := DeckResult{
		Deck:   name,
		Output: e.OutputPath(path),
	}
	if path.Stem() == "" || identity == "" {
		return result, ErrEmptyFilename
	}

	ids, err := e.service.FindNotes(ctx, DeckQuery(name))
	if err != nil {
		return result, fmt.Errorf("service.FindNotes(%s) > %w", name, err)
	}
	var notes []ankiconnect.NoteInfo
	if len(ids) > 0 {
		notes, err = e.service.NotesInfo(ctx, ids)
		if err != nil {
			return result, fmt.Errorf("service.NotesInfo(%s) > %w", name, err)
		}
	}

	cards := make([]interchange.Card, 0, len(notes))
	var refs []media.Reference
	for _, note := range notes {
		card, ok := cardFromNote(name, note)
		if !ok {
			result.Skipped++
			continue
		}
		for _, ref := range media.CollectFields(card.Front, card.Back) {
			if ref.IsFlat() {
				refs = append(refs, ref)
			}
		}
		card.Front = media.ToRepo(card.Front, identity)
		card.Back = media.ToRepo(card.Back, identity)
		cards = append(cards, card)
	}
	result.Cards = len(cards)

	var errs []error
	if len(refs) > 0 {
		resolution := media.Resolution{}
		if privateStore != "" {
			resolution = media.LocateFlat(privateStore, refs)
		} else {
			for _, ref := range media.Distinct(refs) {
				resolution.Missing = append(resolution.Missing, ref.Filename)
			}
		}
		result.MediaMissing = resolution.Missing

		copied, err := media.Materialize(resolution.Paths, filepath.Join(e.opts.MediaDirectory, identity))
		result.MediaCopied = copied
		if err != nil {
			errs = append(errs, fmt.Errorf("media.Materialize(%s) > %w", identity, err))
		}
	}

	if err := e.opts.Format.WriteFile(result.Output, cards); err != nil {
		errs = append(errs, fmt.Errorf("Format.WriteFile(%s) > %w", result.Output, err))
	}
	return result, errors.Join(errs...)
}

// searchEscaper escapes the characters the application's search syntax treats as wildcards or quoting.
var searchEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `*`, `\*`, `_`, `\_`)

// DeckQuery matches the notes of one deck. Notes of its subdecks are excluded since each subdeck is exported
// to its own file.
func DeckQuery(name string) string {
	escaped := searchEscaper.Replace(name)
	return fmt.Sprintf(`"deck:%s" -"deck:%s::*"`, escaped, escaped)
}

// cardFromNote maps the first two fields of a note, in model order, to a card with decoded entities.
func cardFromNote(deckName string, note ankiconnect.NoteInfo) (interchange.Card, bool) {
	fields := note.OrderedFields()
	if len(fields) == 0 {
		slog.Default().Warn("note without fields",
			slog.String("deck", deckName),
			slog.Int64("noteId", note.NoteID),
		)
		return interchange.Card{}, false
	}

	card := interchange.Card{
		Front: interchange.UnescapeEntities(fields[0].Value),
		Tags:  note.Tags,
	}
	if len(fields) > 1 {
		card.Back = interchange.UnescapeEntities(fields[1].Value)
	}
	for _, extra := range fields[min(len(fields), 2):] {
		if strings.TrimSpace(extra.Value) != "" {
			slog.Default().Warn("dropping a field the deck file cannot hold",
				slog.String("deck", deckName),
				slog.Int64("noteId", note.NoteID),
				slog.String("field", extra.Name),
			)
		}
	}
	return card, true
}
