// Package catalog builds the published projections of the package directory: the listing data, the listing
// page and the sitemap.
package catalog

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// OtherSubject groups packages whose filename carries no subject prefix.
	OtherSubject = "Autres"
	packageExt   = ".apkg"
	dateLayout   = "02/01/2006"
)

// Entry describes one published package.
type Entry struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Size     string `json:"size"`
	Date     string `json:"date"`
	URL      string `json:"url"`
	Cards    int    `json:"cards,omitempty"`
}

// Listing groups entries by subject, entries sorted by filename.
type Listing map[string][]Entry

// Subjects returns the subject names in order.
func (l Listing) Subjects() []string {
	subjects := make([]string, 0, len(l))
	for subject := range l {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

func (l Listing) Total() int {
	total := 0
	for _, entries := range l {
		total += len(entries)
	}
	return total
}

var subjectCaser = cases.Title(language.French)

// SubjectAndName splits a package stem into its display subject and title.
func SubjectAndName(stem string) (string, string) {
	prefix, rest, found := strings.Cut(stem, "-")
	if !found {
		return OtherSubject, strings.ReplaceAll(stem, "_", " ")
	}
	return subjectCaser.String(prefix), strings.ReplaceAll(rest, "_", " ")
}

// Build lists the packages in packagesDir. Card counts come from the manifest when it knows the package.
func Build(packagesDir string, manifest Manifest) (Listing, error) {
	matches, err := filepath.Glob(filepath.Join(packagesDir, "*"+packageExt))
	if err != nil {
		return nil, fmt.Errorf("filepath.Glob(%s) > %w", packagesDir, err)
	}
	sort.Strings(matches)

	listing := Listing{}
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("os.Stat(%s) > %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		filename := filepath.Base(path)
		subject, name := SubjectAndName(strings.TrimSuffix(filename, packageExt))
		listing[subject] = append(listing[subject], Entry{
			Name:     name,
			Filename: filename,
			Size:     humanize.IBytes(uint64(info.Size())),
			Date:     info.ModTime().Format(dateLayout),
			URL:      url.PathEscape(filename),
			Cards:    manifest[filename].Cards,
		})
	}
	return listing, nil
}
