package catalog

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cermp/anki-ptsi/internal/assets"
)

const (
	ListingFile = "decks.json"
	PageFile    = "decks.html"
	SitemapFile = "sitemap.xml"
)

// Site writes the listing projections into the package directory.
type Site struct {
	PackagesDir  string
	BaseURL      string
	TemplatePath string
	Now          func() time.Time
}

// Index rebuilds every projection from the packages currently on disk and returns the listing.
func (s Site) Index() (Listing, error) {
	manifest, err := LoadManifest(filepath.Join(s.PackagesDir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("LoadManifest() > %w", err)
	}
	listing, err := Build(s.PackagesDir, manifest)
	if err != nil {
		return nil, fmt.Errorf("Build(%s) > %w", s.PackagesDir, err)
	}
	if err := s.Write(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Write renders the listing data, the listing page and the sitemap.
func (s Site) Write(listing Listing) error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	data, err := marshalIndent(listing)
	if err != nil {
		return fmt.Errorf("marshalIndent(listing) > %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.PackagesDir, ListingFile), data); err != nil {
		return err
	}

	var page bytes.Buffer
	if err := assets.WriteDecksPage(&page, s.TemplatePath, pageFor(listing, now)); err != nil {
		return fmt.Errorf("assets.WriteDecksPage() > %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.PackagesDir, PageFile), page.Bytes()); err != nil {
		return err
	}

	sitemap, err := Sitemap(s.BaseURL, listing, now)
	if err != nil {
		return fmt.Errorf("Sitemap() > %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.PackagesDir, SitemapFile), sitemap); err != nil {
		return err
	}

	slog.Default().Info("listing written",
		slog.String("directory", s.PackagesDir),
		slog.Int("decks", listing.Total()),
		slog.Int("subjects", len(listing)),
	)
	return nil
}

func pageFor(listing Listing, now time.Time) assets.DecksPage {
	page := assets.DecksPage{
		TotalDecks:    listing.Total(),
		TotalSubjects: len(listing),
		Generated:     now,
	}
	for _, subject := range listing.Subjects() {
		group := assets.DeckSubject{Name: subject}
		for _, entry := range listing[subject] {
			group.Decks = append(group.Decks, assets.DeckCard{
				Name:     entry.Name,
				Filename: entry.Filename,
				Size:     entry.Size,
				Date:     entry.Date,
				URL:      entry.URL,
				Cards:    entry.Cards,
			})
		}
		page.Subjects = append(page.Subjects, group)
	}
	return page
}
