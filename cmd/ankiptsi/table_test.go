package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cermp/anki-ptsi/internal/datasync"
)

func TestFormatTable(t *testing.T) {
	tests := []struct {
		name    string
		columns []column
		rows    [][]string
		want    []string
	}{
		{
			name: "no columns",
		},
		{
			name:    "short rows are padded",
			columns: summaryColumns[:2],
			rows:    [][]string{{"si::torseur", "12"}, {"maths::vide"}},
			want:    []string{"DECK", "CARDS", "si::torseur", "12", "maths::vide"},
		},
		{
			name:    "listing columns",
			columns: listingColumns,
			rows:    [][]string{{"Physique", "optique", "2.0 KiB", "01/09/2024"}},
			want:    []string{"SUBJECT", "SIZE", "Physique", "2.0 KiB", "01/09/2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTable(tt.columns, tt.rows)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			assert.True(t, strings.HasPrefix(got, "╭"))
		})
	}
}

func TestWriteSummary(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	summary := &datasync.Summary{Decks: []datasync.DeckResult{
		{Deck: "si::torseur", Cards: 12, Duplicates: 1, MediaCopied: 2},
		{Deck: "physique::optique", Cards: 3, MediaMissing: []string{"ghost.png"}},
		{Deck: "maths::vide", Err: errors.New("deck has no cards")},
	}}

	var out bytes.Buffer
	require.NoError(t, writeSummary(&out, "Package", summary))

	got := out.String()
	assert.Contains(t, got, "Package\n")
	assert.Contains(t, got, "ghost.png")
	assert.Contains(t, got, "ok with warnings")
	assert.Contains(t, got, "failed: deck has no cards")
	assert.Contains(t, got, "3 processed, 2 succeeded, 1 failed, 15 cards\n")
}

func TestWriteSummary_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeSummary(&out, "Export", &datasync.Summary{}))
	assert.Equal(t, "\nExport\n0 processed, 0 succeeded, 0 failed, 0 cards\n", out.String())
}
