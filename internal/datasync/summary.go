// Package datasync runs the per-deck pipelines between the flashcard application, the deck files of the
// repository and the distributable packages.
//
// Every run processes decks one at a time. A deck failure is recorded in the Summary and the run moves on;
// only conditions that make every remaining deck fail (the application is unreachable, the note model is
// unusable, the manifest cannot be written) stop a run early.
package datasync

import (
	"log/slog"
)

// DeckResult is the outcome of one deck.
type DeckResult struct {
	Deck   string
	Source string
	Output string

	Cards       int
	Duplicates  int
	Rejected    int
	Skipped     int
	MediaCopied int
	// MediaMissing lists referenced files that could not be found.
	MediaMissing []string

	Err error
}

func (r DeckResult) Failed() bool {
	return r.Err != nil
}

// Summary aggregates the deck results of a run in processing order.
type Summary struct {
	Decks []DeckResult
}

func (s *Summary) add(result DeckResult) {
	s.Decks = append(s.Decks, result)

	if result.Err != nil {
		slog.Default().Warn("deck failed",
			slog.String("deck", result.Deck),
			slog.String("source", result.Source),
			slog.Any("error", result.Err),
		)
		return
	}
	slog.Default().Info("deck done",
		slog.String("deck", result.Deck),
		slog.String("output", result.Output),
		slog.Int("cards", result.Cards),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("mediaCopied", result.MediaCopied),
		slog.Int("mediaMissing", len(result.MediaMissing)),
	)
}

func (s *Summary) Processed() int {
	return len(s.Decks)
}

func (s *Summary) Succeeded() int {
	n := 0
	for _, result := range s.Decks {
		if !result.Failed() {
			n++
		}
	}
	return n
}

func (s *Summary) Failed() int {
	return s.Processed() - s.Succeeded()
}

// Cards counts the cards of the decks that succeeded.
func (s *Summary) Cards() int {
	n := 0
	for _, result := range s.Decks {
		if !result.Failed() {
			n += result.Cards
		}
	}
	return n
}

func (s *Summary) Duplicates() int {
	n := 0
	for _, result := range s.Decks {
		n += result.Duplicates
	}
	return n
}

func (s *Summary) MediaMissing() int {
	n := 0
	for _, result := range s.Decks {
		n += len(result.MediaMissing)
	}
	return n
}
