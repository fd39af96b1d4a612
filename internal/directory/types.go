package directory

import (
	"encoding/json"

	"github.com/agentstation/sponsorcheck/pkg/constants"
)

// Tag is one directory tag attached to a profile.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Profile is one record in the profile directory, identified by slug.
type Profile struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	CanonicalURL string `json:"canonicalUrl"`
	Tags         []Tag  `json:"tags"`
}

// graphqlRequest is the POST body of one GraphQL query.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the envelope of one GraphQL response. Data may be
// absent or partial on error responses.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// UnnamedTagIDs collects the tag ids across profiles whose names were not
// returned inline, deduplicated in first-seen order.
func UnnamedTagIDs(profiles []Profile) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, profile := range profiles {
		for _, tag := range profile.Tags {
			if tag.Name != "" || tag.ID == "" || seen[tag.ID] {
				continue
			}
			seen[tag.ID] = true
			ids = append(ids, tag.ID)
		}
	}
	return ids
}

// ResolveTagNames fills in missing tag names from the resolved details.
// Tags that still have no name get a placeholder; unresolved tags are never
// dropped from a profile's tag list.
func ResolveTagNames(profiles []Profile, details []Tag) {
	names := make(map[string]string, len(details))
	for _, tag := range details {
		if tag.Name != "" {
			names[tag.ID] = tag.Name
		}
	}

	for pi := range profiles {
		for ti := range profiles[pi].Tags {
			tag := &profiles[pi].Tags[ti]
			if tag.Name != "" {
				continue
			}
			if name, ok := names[tag.ID]; ok {
				tag.Name = name
			} else {
				tag.Name = constants.UnknownTagName
			}
		}
	}
}
