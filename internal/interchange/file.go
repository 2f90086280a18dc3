package interchange

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Format is how deck files are laid out on disk.
type Format struct {
	Delimiter rune
	// BOM writes a UTF-8 byte order mark so spreadsheet tools detect the encoding.
	BOM bool
}

// ReadResult holds the cards of one deck file and how many records were skipped.
type ReadResult struct {
	Cards   []Card
	Skipped int
}

// Read decodes every record of r, skipping and logging malformed ones.
func (f Format) Read(r io.Reader, source string) (*ReadResult, error) {
	dec := NewDecoder(r, f.delimiter())
	result := &ReadResult{}
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, ErrMalformedRow) {
			slog.Default().Warn("skipping malformed row",
				slog.String("source", source),
				slog.Any("error", err),
			)
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("Decoder.Decode(%s) > %w", source, err)
		}
		result.Cards = append(result.Cards, card)
	}
	return result, nil
}

// ReadFile reads one deck file.
func (f Format) ReadFile(path string) (*ReadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return f.Read(file, path)
}

// Write encodes cards to w.
func (f Format) Write(w io.Writer, cards []Card) error {
	if f.BOM {
		if _, err := io.WriteString(w, byteOrderMark); err != nil {
			return fmt.Errorf("io.WriteString > %w", err)
		}
	}
	enc := NewEncoder(w, f.delimiter())
	for _, card := range cards {
		if err := enc.Encode(card); err != nil {
			return err
		}
	}
	return enc.Flush()
}

// WriteFile replaces path with the encoded cards. The file is written next to its destination and renamed into
// place, so an interrupted run leaves either the previous content or the new one.
func (f Format) WriteFile(path string, cards []Card) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := f.Write(w, cards); err != nil {
		return fmt.Errorf("Format.Write(%s) > %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("bufio.Writer.Flush > %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("file.Chmod > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", path, err)
	}
	return nil
}

func (f Format) delimiter() rune {
	if f.Delimiter == 0 {
		return DefaultDelimiter
	}
	return f.Delimiter
}
