// Package interchange reads and writes the delimited text files that hold one deck each.
package interchange

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrMalformedRow marks a record that cannot become a card. Decoding continues past it.
var ErrMalformedRow = errors.New("malformed row")

const (
	// DefaultDelimiter avoids the commas that appear in card markup.
	DefaultDelimiter = ';'

	byteOrderMark = "\ufeff"
)

// Card is one flashcard as stored in a deck file.
type Card struct {
	Front string
	Back  string
	Tags  []string
}

// TagString joins the tags the way they are stored in the third column.
func (c Card) TagString() string {
	return strings.Join(c.Tags, " ")
}

// ParseTags splits a tag column on whitespace, dropping repeated tags.
func ParseTags(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	tags := make([]string, 0, len(fields))
	for _, tag := range fields {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// UnescapeEntities turns HTML character references such as &nbsp; or &eacute; into literal characters.
func UnescapeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// Encoder writes cards as records of exactly three fields.
type Encoder struct {
	w *csv.Writer
}

func NewEncoder(w io.Writer, delimiter rune) *Encoder {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	return &Encoder{w: cw}
}

// Encode quotes a field only when it holds the delimiter, a quote, a line break or leading space.
func (e *Encoder) Encode(card Card) error {
	if err := e.w.Write([]string{card.Front, card.Back, card.TagString()}); err != nil {
		return fmt.Errorf("csv.Writer.Write > %w", err)
	}
	return nil
}

// Flush writes any buffered records to the underlying writer.
func (e *Encoder) Flush() error {
	e.w.Flush()
	if err := e.w.Error(); err != nil {
		return fmt.Errorf("csv.Writer.Flush > %w", err)
	}
	return nil
}

// Decoder reads cards from records of two or three fields. A leading byte order mark is ignored.
type Decoder struct {
	records *recordReader
}

func NewDecoder(r io.Reader, delimiter rune) *Decoder {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(byteOrderMark)); err == nil && string(prefix) == byteOrderMark {
		_, _ = br.Discard(len(byteOrderMark))
	}
	return &Decoder{records: newRecordReader(br, delimiter)}
}

// Decode returns the next card, io.EOF after the last record, or an error wrapping ErrMalformedRow for a record
// that must be skipped. Any other error means the input cannot be read further.
func (d *Decoder) Decode() (Card, error) {
	record, line, err := d.records.read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Card{}, io.EOF
		}
		return Card{}, fmt.Errorf("recordReader.read > %w", err)
	}

	if len(record) < 2 {
		return Card{}, fmt.Errorf("%w: line %d: %d field(s), want at least 2", ErrMalformedRow, line, len(record))
	}

	card := Card{
		Front: record[0],
		Back:  record[1],
	}
	if len(record) > 2 {
		card.Tags = ParseTags(record[2])
	}
	return card, nil
}
