// Package deck derives folder, file and media identities from hierarchical deck names.
package deck

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Separator joins the segments of a deck name in the flashcard application.
	Separator = "::"

	// SubjectSentinel is the subject of decks that have no parent segment.
	SubjectSentinel = "divers"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^\w\s-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)
)

// asciiFold decomposes the text and drops everything left outside ASCII, accents included.
func asciiFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
}

// Slug returns a lowercase ASCII identifier of segment: diacritics are stripped,
// punctuation other than underscores is dropped and runs of spaces or dashes become one underscore.
func Slug(segment string) string {
	ascii, _, err := transform.String(asciiFold(), segment)
	if err != nil {
		ascii = segment
	}
	ascii = nonSlugChars.ReplaceAllString(ascii, "")
	ascii = strings.ToLower(strings.TrimSpace(ascii))
	return separatorRuns.ReplaceAllString(ascii, "_")
}

// Path is a hierarchical deck name split into its segments.
// The first segment is the subject when there is more than one.
type Path []string

// SplitPath splits a deck name on separator. The result always has at least one segment.
func SplitPath(name, separator string) Path {
	if separator == "" {
		separator = Separator
	}
	return Path(strings.Split(name, separator))
}

// String joins the segments back into an application deck name.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Subject returns the slug of the first segment, or SubjectSentinel for a single-segment path.
func (p Path) Subject() string {
	if len(p) > 1 {
		return Slug(p[0])
	}
	return SubjectSentinel
}

func (p Path) titleSegments() []string {
	if len(p) > 1 {
		return p[1:]
	}
	return p
}

// Title joins the non-subject segments with spaces. Underscores coming from stored filenames become spaces.
func (p Path) Title() string {
	segments := p.titleSegments()
	words := make([]string, 0, len(segments))
	for _, segment := range segments {
		words = append(words, strings.ReplaceAll(segment, "_", " "))
	}
	return strings.Join(words, " ")
}

// Stem is the interchange file name (without extension) of the deck: the slugs of the title segments joined by underscores.
func (p Path) Stem() string {
	segments := p.titleSegments()
	slugs := make([]string, 0, len(segments))
	for _, segment := range segments {
		slugs = append(slugs, Slug(segment))
	}
	return strings.Join(slugs, "_")
}

// MediaIdentity is the media subfolder of the deck, derived from the last title segment only.
// Two decks whose last segments normalize identically share a folder.
func (p Path) MediaIdentity() string {
	if len(p) == 0 {
		return ""
	}
	return Slug(p[len(p)-1])
}

// SubjectAndTitle returns the subject slug and the readable title of path.
func SubjectAndTitle(path Path) (string, string) {
	return path.Subject(), path.Title()
}

// FilenameFor builds the flat artifact name "{subject}-{title_with_underscores}".
func FilenameFor(subject, title string) string {
	return subject + "-" + strings.ReplaceAll(title, " ", "_")
}

// PathFromFilename rebuilds a deck path from a stored file stem and the folder it was found in.
// A "{subject}-" or "{subject}_" prefix is stripped case-insensitively when present; without it the whole
// stem is the title. An empty subjectHint marks a file at the root of the tree: a dash then separates the
// subject from the title, as in "Maths-Algebre".
func PathFromFilename(stem, subjectHint string) Path {
	if subjectHint == "" {
		if subject, title, ok := strings.Cut(stem, "-"); ok && subject != "" && title != "" {
			return Path{subject, strings.ReplaceAll(title, "_", " ")}
		}
		return Path{strings.ReplaceAll(stem, "_", " ")}
	}
	return Path{subjectHint, strings.ReplaceAll(TrimSubjectPrefix(stem, subjectHint), "_", " ")}
}

// TrimSubjectPrefix removes a leading "{subject}-" or "{subject}_" from stem, ignoring case.
// A stem made only of the prefix is returned unchanged.
func TrimSubjectPrefix(stem, subject string) string {
	n := len(subject)
	if n == 0 || len(stem) <= n+1 || !strings.EqualFold(stem[:n], subject) {
		return stem
	}
	if c := stem[n]; c == '-' || c == '_' {
		return stem[n+1:]
	}
	return stem
}
