package report

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/sponsorcheck/internal/directory"
	"github.com/agentstation/sponsorcheck/pkg/constants"
	"github.com/agentstation/sponsorcheck/pkg/errors"
	"github.com/agentstation/sponsorcheck/pkg/reconcile"
)

// listSeparator joins list-valued CSV fields (tag ids, tag names) inside one
// quoted cell.
const listSeparator = "; "

// csvColumns is the fixed 12-column CSV layout.
var csvColumns = []string{
	"sponsor title",
	"slug",
	"profile found",
	"profile id",
	"canonical url",
	"tag count",
	"tag ids",
	"tag names",
	"has target tag",
	"target tag id",
	"error",
	"checked at",
}

// RenderCSV renders the profile records as a CSV document: a header row plus
// one row per record. Every field is double-quote-wrapped; values containing
// quotes or separators are passed through literally, an inherited limitation
// of the export format.
func RenderCSV(result *reconcile.Result, now time.Time) string {
	caser := cases.Title(language.English)
	headers := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		headers[i] = caser.String(col)
	}

	date := now.Format("2006-01-02")
	var b strings.Builder
	writeRow(&b, headers)
	for _, record := range result.Profiles {
		writeRow(&b, []string{
			record.Title,
			record.Slug,
			strconv.FormatBool(record.Exists),
			record.ProfileID,
			record.CanonicalURL,
			strconv.Itoa(len(record.Tags)),
			joinTagIDs(record.Tags),
			tagNames(record.Tags),
			strconv.FormatBool(record.HasTargetTag),
			constants.TargetTagID,
			record.Error,
			date,
		})
	}
	return b.String()
}

// CSVFilename returns the dated export filename. Same-day reruns overwrite.
func CSVFilename(now time.Time) string {
	return "sponsor-validation-" + now.Format("2006-01-02") + ".csv"
}

// WriteCSV writes the CSV export into dir and returns the file path.
func WriteCSV(result *reconcile.Result, dir string, now time.Time) (string, error) {
	path := filepath.Join(dir, CSVFilename(now))
	data := RenderCSV(result, now)
	if err := os.WriteFile(path, []byte(data), constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}

// writeRow writes one CSV row with every field quote-wrapped.
func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(field)
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// joinTagIDs joins tag ids with the list separator.
func joinTagIDs(tags []directory.Tag) string {
	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return strings.Join(ids, listSeparator)
}

// tagNames joins tag names with the list separator.
func tagNames(tags []directory.Tag) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, listSeparator)
}
