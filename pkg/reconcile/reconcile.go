// Package reconcile computes the two joins at the heart of sponsorcheck:
// the set difference between CMS sponsor titles and the reference table, and
// the per-slug join of reference entries against directory profiles. All
// functions are pure; network fetching happens upstream.
package reconcile

import (
	"sort"

	"github.com/agentstation/sponsorcheck/internal/directory"
	"github.com/agentstation/sponsorcheck/internal/reference"
	"github.com/agentstation/sponsorcheck/pkg/constants"
)

// ProfileNotFoundError is the error string carried by records whose slug has
// no directory profile.
const ProfileNotFoundError = "Profile not found"

// ProfileRecord is the joined outcome for one submitted slug.
type ProfileRecord struct {
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Exists       bool            `json:"exists"`
	ProfileID    string          `json:"profileId,omitempty"`
	CanonicalURL string          `json:"canonicalUrl,omitempty"`
	Tags         []directory.Tag `json:"tags"`
	HasTargetTag bool            `json:"hasTargetTag"`
	Error        string          `json:"error,omitempty"`
}

// Result is the read-only aggregate of one reconciliation run.
type Result struct {
	// SponsorTitles are the CMS titles, deduplicated and sorted, with empty
	// titles dropped (counted in SponsorsWithoutTitles instead).
	SponsorTitles []string `json:"sponsorTitles"`

	// ReferenceTitles are the reference-table titles with a non-null slug,
	// sorted. Null-slug entries are excluded from the diff but listed in
	// UnlinkedTitles.
	ReferenceTitles []string `json:"referenceTitles"`

	// MissingInReference are sponsor titles absent from the reference table.
	MissingInReference []string `json:"missingInReference"`

	// ExtraInReference are reference titles absent from the sponsor source.
	ExtraInReference []string `json:"extraInReference"`

	// UnlinkedTitles are known sponsors whose reference slug is null.
	UnlinkedTitles []string `json:"unlinkedTitles"`

	// SponsorsWithoutTitles counts CMS entries carrying no title.
	SponsorsWithoutTitles int `json:"sponsorsWithoutTitles"`

	// Profiles holds exactly one record per submitted slug.
	Profiles []ProfileRecord `json:"profiles"`
}

// Valid reports whether the title diff found zero discrepancies. Missing
// directory profiles do not affect validity; they are reported, not enforced.
func (r *Result) Valid() bool {
	return len(r.MissingInReference) == 0 && len(r.ExtraInReference) == 0
}

// New reconciles the sponsor titles against the reference table and joins the
// fetched directory profiles back onto the reference slugs.
func New(sponsorTitles []string, table map[string]*string, profiles []directory.Profile) *Result {
	result := &Result{
		UnlinkedTitles: reference.Unlinked(table),
	}

	result.SponsorTitles, result.SponsorsWithoutTitles = dedupeSorted(sponsorTitles)
	result.ReferenceTitles = linkedTitles(table)

	result.MissingInReference = difference(result.SponsorTitles, result.ReferenceTitles)
	result.ExtraInReference = difference(result.ReferenceTitles, result.SponsorTitles)

	result.Profiles = joinProfiles(table, profiles)
	return result
}

// dedupeSorted deduplicates and sorts titles, dropping empty ones and
// returning how many were empty.
func dedupeSorted(titles []string) ([]string, int) {
	seen := make(map[string]bool, len(titles))
	empty := 0
	var out []string
	for _, title := range titles {
		if title == "" {
			empty++
			continue
		}
		if seen[title] {
			continue
		}
		seen[title] = true
		out = append(out, title)
	}
	sort.Strings(out)
	return out, empty
}

// linkedTitles returns the sorted reference titles that carry a non-null slug.
func linkedTitles(table map[string]*string) []string {
	var titles []string
	for title, slug := range table {
		if slug == nil || *slug == "" {
			continue
		}
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// difference returns the members of a absent from b. Both inputs must be
// sorted and deduplicated.
func difference(a, b []string) []string {
	members := make(map[string]bool, len(b))
	for _, s := range b {
		members[s] = true
	}
	var out []string
	for _, s := range a {
		if !members[s] {
			out = append(out, s)
		}
	}
	return out
}

// joinProfiles emits one record per reference slug. Profiles are keyed by
// slug with last-write-wins on duplicates: the upstream API can return the
// same slug twice across batches, and the final occurrence is taken. The
// target-tag flag is computed once per profile here and echoed unchanged
// into the record.
func joinProfiles(table map[string]*string, profiles []directory.Profile) []ProfileRecord {
	bySlug := make(map[string]directory.Profile, len(profiles))
	for _, profile := range profiles {
		bySlug[profile.Slug] = profile
	}

	titleFor := make(map[string]string)
	for _, title := range reference.Titles(table) {
		slug := table[title]
		if slug == nil || *slug == "" {
			continue
		}
		if _, ok := titleFor[*slug]; !ok {
			titleFor[*slug] = title
		}
	}

	slugs := reference.Slugs(table)
	records := make([]ProfileRecord, 0, len(slugs))
	for _, slug := range slugs {
		record := ProfileRecord{
			Title: titleFor[slug],
			Slug:  slug,
			Tags:  []directory.Tag{},
		}

		if profile, ok := bySlug[slug]; ok {
			record.Exists = true
			record.ProfileID = profile.ID
			record.CanonicalURL = profile.CanonicalURL
			if profile.Tags != nil {
				record.Tags = profile.Tags
			}
			record.HasTargetTag = hasTargetTag(profile)
		} else {
			record.Error = ProfileNotFoundError
		}

		records = append(records, record)
	}
	return records
}

// hasTargetTag reports whether any of the profile's tags is the event cohort tag.
func hasTargetTag(profile directory.Profile) bool {
	for _, tag := range profile.Tags {
		if tag.ID == constants.TargetTagID {
			return true
		}
	}
	return false
}
