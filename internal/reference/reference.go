// Package reference holds the manually maintained sponsor lookup table.
// The table maps CMS sponsor titles to directory slugs; a null slug marks a
// sponsor that is known but not linked to a directory profile yet. The table
// is embedded at build time and read-only at runtime.
package reference

import (
	_ "embed"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/sponsorcheck/pkg/errors"
)

//go:embed sponsors.yaml
var sponsorsYAML []byte

// Load parses the embedded reference table.
func Load() (map[string]*string, error) {
	var table map[string]*string
	if err := yaml.Unmarshal(sponsorsYAML, &table); err != nil {
		return nil, errors.WrapParse("yaml", "sponsors.yaml", err)
	}
	return table, nil
}

// Titles returns all reference titles, sorted.
func Titles(table map[string]*string) []string {
	titles := make([]string, 0, len(table))
	for title := range table {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Slugs returns the non-null slug values, deduplicated, ordered by sorted
// title. This is the exact slug list submitted to the directory client.
func Slugs(table map[string]*string) []string {
	seen := make(map[string]bool)
	var slugs []string
	for _, title := range Titles(table) {
		slug := table[title]
		if slug == nil || *slug == "" || seen[*slug] {
			continue
		}
		seen[*slug] = true
		slugs = append(slugs, *slug)
	}
	return slugs
}

// Unlinked returns the titles whose slug is null, sorted. These sponsors are
// known but have no directory profile to check.
func Unlinked(table map[string]*string) []string {
	var titles []string
	for title, slug := range table {
		if slug == nil || *slug == "" {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	return titles
}
