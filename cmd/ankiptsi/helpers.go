package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/cermp/anki-ptsi/internal/ankiconnect"
	"github.com/cermp/anki-ptsi/internal/config"
	"github.com/cermp/anki-ptsi/internal/datasync"
	"github.com/cermp/anki-ptsi/internal/interchange"
)

var (
	errRunInProgress = errors.New("another run is in progress")
	errDecksFailed   = errors.New("some decks failed")
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// acquireLock takes the repository lock for the duration of a run that writes files.
func acquireLock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("flock.TryLock(%s) > %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is locked", errRunInProgress, path)
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}

func newAnkiClient(cfg *config.Config) *ankiconnect.Client {
	return ankiconnect.NewClient(ankiconnect.Options{
		URL:           cfg.Anki.URL,
		APIKey:        cfg.Anki.APIKey,
		Version:       cfg.Anki.Version,
		Timeout:       cfg.Anki.Timeout(),
		RetryAttempts: cfg.Anki.RetryAttempts,
	})
}

func interchangeFormat(cfg *config.Config) interchange.Format {
	return interchange.Format{
		Delimiter: cfg.Interchange.DelimiterRune(),
		BOM:       cfg.Interchange.WriteBOM,
	}
}

// summaryError turns deck failures into a non-zero exit once the summary is printed.
func summaryError(summary *datasync.Summary) error {
	if summary.Failed() == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d", errDecksFailed, summary.Failed(), summary.Processed())
}

// runFailed prints what a run stopped early had already processed, then returns its error.
func runFailed(w io.Writer, title string, summary *datasync.Summary, err error) error {
	if summary == nil {
		return err
	}
	if writeErr := writeSummary(w, title, summary); writeErr != nil {
		return errors.Join(err, writeErr)
	}
	return err
}
