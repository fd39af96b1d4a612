// Package directory provides the batched GraphQL client for the third-party
// profile directory. Slugs are submitted in fixed-size chunks with a pacing
// delay between submissions; a failed batch degrades to "not found" entries
// instead of aborting the run.
package directory

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/sponsorcheck/internal/transport"
	"github.com/agentstation/sponsorcheck/pkg/constants"
	"github.com/agentstation/sponsorcheck/pkg/errors"
	"github.com/agentstation/sponsorcheck/pkg/logging"
)

const profilesQuery = `query Profiles($slugs: [String!]!) {
  profiles(where: {slug_in: $slugs}) {
    id
    slug
    canonicalUrl
    tags { id name }
  }
}`

const tagDetailsQuery = `query TagDetails($ids: [ID!]!) {
  tags(where: {id_in: $ids}) {
    id
    name
  }
}`

// Client queries the profile directory.
type Client struct {
	transport *transport.Client
	endpoint  string
	batchSize int
	pause     time.Duration
	sleep     func(time.Duration) // seam for tests observing the pacing
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPause overrides the inter-batch pacing delay. Used by tests.
func WithPause(d time.Duration) Option {
	return func(c *Client) { c.pause = d }
}

// WithLogger sets the logger used by the client.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a directory client for the given GraphQL endpoint. The
// directory carries no credentials; access is network-restricted upstream.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		transport: transport.New(&transport.NoAuth{}, constants.DirectoryRequestTimeout),
		endpoint:  endpoint,
		batchSize: constants.DirectoryBatchSize,
		pause:     constants.DirectoryBatchPause,
		sleep:     time.Sleep,
		logger:    logging.Default(),
	}
	if c.endpoint == "" {
		c.endpoint = constants.DefaultDirectoryEndpoint
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfiles retrieves directory profiles for the given slugs, submitting
// them in chunks of the configured batch size with the pacing delay between
// submissions (not before the first, not after the last). Chunk order follows
// the input order; within a chunk, accumulation order is the API return
// order. A failed batch logs and contributes nothing; remaining batches still
// run, so the caller sees missing profiles as "not found" rather than a hard
// failure. Batches are deliberately sequential to respect the pacing delay.
func (c *Client) FetchProfiles(ctx context.Context, slugs []string) []Profile {
	var profiles []Profile
	chunks := chunk(slugs, c.batchSize)

	for i, batch := range chunks {
		if i > 0 {
			c.sleep(c.pause)
		}

		found, err := c.fetchBatch(ctx, batch)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Int("batch", i+1).
				Int("slugs", len(batch)).
				Msg("directory batch failed, treating batch as not found")
			continue
		}
		profiles = append(profiles, found...)
	}

	c.logger.Debug().
		Int("slugs", len(slugs)).
		Int("batches", len(chunks)).
		Int("profiles", len(profiles)).
		Msg("fetched directory profiles")
	return profiles
}

// fetchBatch issues one profiles query for a single chunk of slugs.
func (c *Client) fetchBatch(ctx context.Context, slugs []string) ([]Profile, error) {
	var result struct {
		Profiles []Profile `json:"profiles"`
	}
	if err := c.query(ctx, profilesQuery, map[string]any{"slugs": slugs}, &result); err != nil {
		return nil, err
	}
	return result.Profiles, nil
}

// FetchTagDetails resolves tag identifiers to names. An empty input or any
// failure yields an empty list; tag resolution is never fatal.
func (c *Client) FetchTagDetails(ctx context.Context, tagIDs []string) []Tag {
	if len(tagIDs) == 0 {
		return nil
	}

	var result struct {
		Tags []Tag `json:"tags"`
	}
	if err := c.query(ctx, tagDetailsQuery, map[string]any{"ids": tagIDs}, &result); err != nil {
		c.logger.Warn().Err(err).Msg("tag detail lookup failed, continuing without names")
		return nil
	}
	return result.Tags
}

// query performs one GraphQL request and decodes data into out. A response
// with a missing or partial data object decodes to zero values rather than
// erroring; GraphQL errors are surfaced when no data came back at all.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.WrapParse("json", "graphql request", err)
	}

	resp, err := c.transport.Post(ctx, c.endpoint, body)
	if err != nil {
		return errors.WrapAPI("directory", c.endpoint, 0, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "directory response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errors.APIError{
			Service:    "directory",
			StatusCode: resp.StatusCode,
			Endpoint:   c.endpoint,
			Message:    "graphql query rejected",
			Body:       string(raw),
		}
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errors.WrapParse("json", "graphql response", err)
	}
	if len(envelope.Data) == 0 && len(envelope.Errors) > 0 {
		return &errors.APIError{
			Service:  "directory",
			Endpoint: c.endpoint,
			Message:  envelope.Errors[0].Message,
		}
	}
	if len(envelope.Data) == 0 {
		return nil // empty data, zero-value result
	}
	return errors.WrapParse("json", "graphql data", json.Unmarshal(envelope.Data, out))
}

// chunk partitions slugs into batches of at most size, preserving order.
// The last chunk may be smaller.
func chunk(slugs []string, size int) [][]string {
	if size <= 0 || len(slugs) == 0 {
		return nil
	}
	var chunks [][]string
	for start := 0; start < len(slugs); start += size {
		end := start + size
		if end > len(slugs) {
			end = len(slugs)
		}
		chunks = append(chunks, slugs[start:end])
	}
	return chunks
}
