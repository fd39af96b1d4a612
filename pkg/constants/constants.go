// Package constants provides shared constants used throughout the sponsorcheck codebase.
// This includes timeouts, batch limits, API versions, and the fixed identifiers
// the reconciliation depends on.
package constants

import "time"

// Timeout constants define the timeout durations used by the HTTP clients
const (
	// CMSFetchTimeout is the timeout for the single page-document query.
	// Exceeding it is fatal for the run.
	CMSFetchTimeout = 10 * time.Second

	// DirectoryRequestTimeout is the timeout for one directory batch request.
	DirectoryRequestTimeout = 30 * time.Second
)

// Directory batching constants
const (
	// DirectoryBatchSize is the number of slugs submitted per directory query.
	DirectoryBatchSize = 50

	// DirectoryBatchPause is the pause between batch submissions. It is a
	// rate-limit accommodation for the directory API; batches must not be
	// issued concurrently.
	DirectoryBatchPause = 200 * time.Millisecond
)

// CMS query constants
const (
	// CMSAPIVersion is the document-store query API version in the request path.
	CMSAPIVersion = "v2023-08-01"

	// PerspectivePublished queries only published documents.
	PerspectivePublished = "published"

	// PerspectivePreviewDrafts overlays draft documents onto published ones.
	PerspectivePreviewDrafts = "previewDrafts"

	// DefaultPerspective is used when no (or an invalid) perspective is configured.
	DefaultPerspective = PerspectivePublished
)

// Directory constants
const (
	// DefaultDirectoryEndpoint is the profile directory GraphQL endpoint.
	DefaultDirectoryEndpoint = "https://directory.confnet.io/graphql"

	// TargetTagID is the directory tag that marks profiles belonging to the
	// current event cohort.
	TargetTagID = "VGFnOjI0ODE="

	// UnknownTagName is the placeholder for tag ids whose name could not be
	// resolved. Unresolved tags are kept, never dropped.
	UnknownTagName = "(unknown)"
)

// File permission constants
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
