package catalog

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders the sitemap for the site root, the listing page and every package.
func Sitemap(baseURL string, listing Listing, now time.Time) ([]byte, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	today := now.Format(time.DateOnly)

	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs: []sitemapURL{
			{Loc: baseURL, LastMod: today, ChangeFreq: "daily"},
			{Loc: baseURL + PageFile, LastMod: today, ChangeFreq: "daily"},
		},
	}
	for _, subject := range listing.Subjects() {
		for _, entry := range listing[subject] {
			set.URLs = append(set.URLs, sitemapURL{Loc: baseURL + entry.URL, LastMod: today})
		}
	}

	content, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("xml.MarshalIndent() > %w", err)
	}
	return append([]byte(xml.Header), append(content, '\n')...), nil
}
