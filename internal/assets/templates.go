// Package assets holds the embedded page templates and the data they render.
package assets

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const decksTemplateName = "decks.html.go.tmpl"

//go:embed templates/decks.html.go.tmpl
var fallbackDecksTemplate string

// DecksPage is the data the listing page template renders.
type DecksPage struct {
	Subjects      []DeckSubject
	TotalDecks    int
	TotalSubjects int
	Generated     time.Time
}

// DeckSubject groups the published decks of one subject.
type DeckSubject struct {
	Name  string
	Decks []DeckCard
}

type DeckCard struct {
	Name     string
	Filename string
	Size     string
	Date     string
	URL      string
	Cards    int
}

func ParseDecksTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, decksTemplateName, fallbackDecksTemplate)
}

func WriteDecksPage(output io.Writer, templatePath string, page DecksPage) error {
	tmpl, err := ParseDecksTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseDecksTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, page); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	// An override on the filesystem wins when it parses
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
