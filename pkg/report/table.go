// Package report renders the reconciliation result as a console report and a
// CSV export.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/sponsorcheck/pkg/reconcile"
)

// Boolean glyphs used in the console table.
const (
	glyphYes = "✓"
	glyphNo  = "✗"
)

// column pairs a header with its fixed display width. Longer values are
// truncated to width-3 plus an ellipsis.
type column struct {
	header string
	width  int
}

// tableColumns is the fixed 7-column layout of the profile table.
var tableColumns = []column{
	{"sponsor", 20},
	{"slug", 18},
	{"found", 12},
	{"profile id", 14},
	{"canonical url", 20},
	{"tags", 20},
	{"target tag", 12},
}

// RenderReport writes the full human-readable report: a summary of the title
// diff followed by the per-slug profile table and a one-line verdict.
func RenderReport(w io.Writer, result *reconcile.Result) error {
	renderSummary(w, result)

	if err := renderTable(w, result.Profiles); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if result.Valid() {
		fmt.Fprintln(w, "Result: sponsor list matches the reference table")
	} else {
		fmt.Fprintf(w, "Result: %d missing, %d extra — reference table needs updating\n",
			len(result.MissingInReference), len(result.ExtraInReference))
	}
	return nil
}

// renderSummary prints the title-diff counts and lists.
func renderSummary(w io.Writer, result *reconcile.Result) {
	fmt.Fprintln(w, "Sponsor validation report")
	fmt.Fprintf(w, "  sponsor titles:    %d (%d without titles)\n",
		len(result.SponsorTitles), result.SponsorsWithoutTitles)
	fmt.Fprintf(w, "  reference entries: %d linked, %d unlinked\n",
		len(result.ReferenceTitles), len(result.UnlinkedTitles))
	fmt.Fprintln(w)

	renderTitleList(w, "Missing in reference", result.MissingInReference)
	renderTitleList(w, "Extra in reference", result.ExtraInReference)
	renderTitleList(w, "Known but unlinked", result.UnlinkedTitles)
}

func renderTitleList(w io.Writer, label string, titles []string) {
	if len(titles) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", label, len(titles))
	for _, title := range titles {
		fmt.Fprintf(w, "  - %s\n", title)
	}
	fmt.Fprintln(w)
}

// renderTable prints the fixed-width 7-column profile table.
func renderTable(w io.Writer, records []reconcile.ProfileRecord) error {
	caser := cases.Title(language.English)
	headers := make([]any, len(tableColumns))
	for i, col := range tableColumns {
		headers[i] = caser.String(col.header)
	}

	table := tablewriter.NewTable(w)
	table.Header(headers...)

	for _, record := range records {
		row := []string{
			record.Title,
			record.Slug,
			glyph(record.Exists),
			record.ProfileID,
			record.CanonicalURL,
			tagNames(record.Tags),
			glyph(record.HasTargetTag),
		}
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = truncate(cell, tableColumns[i].width)
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}

	return table.Render()
}

// glyph renders a boolean as its table glyph.
func glyph(b bool) string {
	if b {
		return glyphYes
	}
	return glyphNo
}

// truncate shortens s to the column width in runes, replacing the tail with
// an ellipsis. Rune indexing keeps multi-byte sponsor names valid UTF-8.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
