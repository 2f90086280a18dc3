package interchange

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// recordReader splits delimited text into records. A field opening with a quote runs to the matching quote,
// doubled quotes inside it stand for one, and its line breaks are kept byte for byte, CRLF included.
// Outside quotes, LF and CRLF both end a record. Text following a closing quote is kept as is.
type recordReader struct {
	r         *bufio.Reader
	delimiter rune
	line      int
	pending   []rune
}

func newRecordReader(r *bufio.Reader, delimiter rune) *recordReader {
	return &recordReader{r: r, delimiter: delimiter, line: 1}
}

func (rr *recordReader) next() (rune, error) {
	if n := len(rr.pending); n > 0 {
		r := rr.pending[n-1]
		rr.pending = rr.pending[:n-1]
		return r, nil
	}
	r, _, err := rr.r.ReadRune()
	return r, err
}

func (rr *recordReader) back(r rune) {
	rr.pending = append(rr.pending, r)
}

// newline consumes the LF of a CRLF pair once the CR has been read.
func (rr *recordReader) newline() (bool, error) {
	r, err := rr.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	if r == '\n' {
		rr.line++
		return true, nil
	}
	rr.back(r)
	return false, nil
}

// read returns the fields of the next record and the line it starts on. Blank lines are skipped.
func (rr *recordReader) read() ([]string, int, error) {
	for {
		r, err := rr.next()
		if err != nil {
			return nil, rr.line, err
		}
		if r == '\n' {
			rr.line++
			continue
		}
		if r == '\r' {
			ok, err := rr.newline()
			if err != nil {
				return nil, rr.line, err
			}
			if ok {
				continue
			}
		}
		rr.back(r)
		break
	}

	start := rr.line
	var fields []string
	for {
		value, end, err := rr.field()
		if err != nil {
			return nil, start, err
		}
		fields = append(fields, value)
		if end {
			return fields, start, nil
		}
	}
}

// field reads one field and reports whether it ended the record.
func (rr *recordReader) field() (string, bool, error) {
	var b strings.Builder
	r, err := rr.next()
	if errors.Is(err, io.EOF) {
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}
	if r == '"' {
		if err := rr.quoted(&b); err != nil {
			return "", false, err
		}
	} else {
		rr.back(r)
	}

	for {
		r, err := rr.next()
		if errors.Is(err, io.EOF) {
			return b.String(), true, nil
		}
		if err != nil {
			return "", false, err
		}
		switch r {
		case rr.delimiter:
			return b.String(), false, nil
		case '\n':
			rr.line++
			return b.String(), true, nil
		case '\r':
			ok, err := rr.newline()
			if err != nil {
				return "", false, err
			}
			if ok {
				return b.String(), true, nil
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
}

// quoted reads the inside of a quoted field, up to and including the closing quote.
// An unterminated quote runs to the end of the input.
func (rr *recordReader) quoted(b *strings.Builder) error {
	for {
		r, err := rr.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch r {
		case '"':
			n, err := rr.next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if n != '"' {
				rr.back(n)
				return nil
			}
		case '\n':
			rr.line++
		}
		b.WriteRune(r)
	}
}
