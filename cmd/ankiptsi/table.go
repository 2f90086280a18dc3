package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/cermp/anki-ptsi/internal/datasync"
)

// column is one table column: its header and how its cells line up.
type column struct {
	title string
	align text.Align
}

var (
	summaryColumns = []column{
		{"Deck", text.AlignLeft},
		{"Cards", text.AlignRight},
		{"Duplicates", text.AlignRight},
		{"Skipped", text.AlignRight},
		{"Media", text.AlignRight},
		{"Missing", text.AlignLeft},
		{"Status", text.AlignLeft},
	}
	listingColumns = []column{
		{"Subject", text.AlignLeft},
		{"Deck", text.AlignLeft},
		{"Size", text.AlignRight},
		{"Date", text.AlignLeft},
	}
)

// formatTable renders rows under columns with rounded borders. Missing trailing cells are left blank.
func formatTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i := range row {
			row[i] = ""
			if i < len(cells) {
				row[i] = cells[i]
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

// writeSummary prints one row per deck and the run totals.
func writeSummary(w io.Writer, title string, summary *datasync.Summary) error {
	rows := make([][]string, 0, len(summary.Decks))
	for _, result := range summary.Decks {
		status := color.GreenString("ok")
		if result.Failed() {
			status = color.RedString("failed: %v", result.Err)
		} else if len(result.MediaMissing) > 0 || result.Rejected > 0 {
			status = color.YellowString("ok with warnings")
		}
		rows = append(rows, []string{
			result.Deck,
			strconv.Itoa(result.Cards),
			strconv.Itoa(result.Duplicates),
			strconv.Itoa(result.Skipped + result.Rejected),
			strconv.Itoa(result.MediaCopied),
			strings.Join(result.MediaMissing, ", "),
			status,
		})
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	if len(rows) > 0 {
		if _, err := fmt.Fprintln(w, formatTable(summaryColumns, rows)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d processed, %d succeeded, %d failed, %d cards\n",
		summary.Processed(), summary.Succeeded(), summary.Failed(), summary.Cards())
	return err
}
