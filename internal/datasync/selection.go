package datasync

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cermp/anki-ptsi/internal/deck"
)

const deckFilePattern = "**/*.csv"

// ErrInvalidPattern is returned for a selection pattern doublestar cannot parse.
var ErrInvalidPattern = errors.New("invalid selection pattern")

// Selection limits a run to the decks matching at least one pattern. Patterns are matched case-insensitively
// against the deck name and, for deck files, against the path relative to the decks directory.
// An empty selection matches every deck.
type Selection struct {
	patterns []string
}

func NewSelection(patterns ...string) (Selection, error) {
	var selection Selection
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		pattern = strings.ToLower(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return Selection{}, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		selection.patterns = append(selection.patterns, pattern)
	}
	return selection, nil
}

func (s Selection) IsEmpty() bool {
	return len(s.patterns) == 0
}

// Match reports whether any candidate matches any pattern.
func (s Selection) Match(candidates ...string) bool {
	if s.IsEmpty() {
		return true
	}
	for _, candidate := range candidates {
		candidate = strings.ToLower(candidate)
		for _, pattern := range s.patterns {
			if doublestar.MatchUnvalidated(pattern, candidate) {
				return true
			}
		}
	}
	return false
}

// DeckFile is an interchange file found under the decks directory.
type DeckFile struct {
	// Path is the file path on disk.
	Path string
	// Rel is the slash-separated path relative to the decks directory.
	Rel string
	// Subject is the top-level folder holding the file, empty for a file at the root.
	Subject string
	Stem    string
}

// DeckPath rebuilds the deck name of the file from its stem and subject folder.
func (f DeckFile) DeckPath() deck.Path {
	return deck.PathFromFilename(f.Stem, f.Subject)
}

// DiscoverDeckFiles lists the deck files under root in lexical order.
func DiscoverDeckFiles(root string) ([]DeckFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("os.Stat(%s) > %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, fs.ErrInvalid)
	}

	matches, err := doublestar.Glob(os.DirFS(root), deckFilePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("doublestar.Glob(%s) > %w", root, err)
	}
	sort.Strings(matches)

	files := make([]DeckFile, 0, len(matches))
	for _, rel := range matches {
		var subject string
		if dir := path.Dir(rel); dir != "." {
			subject, _, _ = strings.Cut(dir, "/")
		}
		files = append(files, DeckFile{
			Path:    filepath.Join(root, filepath.FromSlash(rel)),
			Rel:     rel,
			Subject: subject,
			Stem:    strings.TrimSuffix(path.Base(rel), path.Ext(rel)),
		})
	}
	return files, nil
}
