// Package cms provides the document-store client that sources sponsor entries.
// It issues a single GROQ query over the HTTP query API and flattens the
// nested sponsor sections of every page document.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/agentstation/sponsorcheck/internal/transport"
	"github.com/agentstation/sponsorcheck/pkg/constants"
	"github.com/agentstation/sponsorcheck/pkg/errors"
	"github.com/agentstation/sponsorcheck/pkg/logging"
)

// sponsorQuery returns every page document with the sponsor collections of
// each nested section component. Sections without sponsors resolve to null
// arrays, which the client tolerates.
const sponsorQuery = `*[_type == "page"]{ title, content[]{ sponsors[]->{title, _key}, supportingSponsors[]->{title, _key} } }`

// Client queries the document store for sponsor entries.
type Client struct {
	transport   *transport.Client
	baseURL     string
	dataset     string
	perspective string
	logger      *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithLogger sets the logger used by the client.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a document-store client for the given project and dataset.
// The token authenticates as a bearer credential on every request.
func New(projectID, dataset, token, perspective string, opts ...Option) *Client {
	c := &Client{
		transport:   transport.New(&transport.BearerAuth{Token: token}, constants.CMSFetchTimeout),
		baseURL:     fmt.Sprintf("https://%s.api.sanity.io", projectID),
		dataset:     dataset,
		perspective: perspective,
		logger:      logging.Default(),
	}
	if c.perspective == "" {
		c.perspective = constants.DefaultPerspective
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSponsors retrieves all sponsor entries across every page document.
// Any transport failure or non-2xx response is fatal for the run; the raw
// response body is logged for diagnosis before the error is returned.
func (c *Client) FetchSponsors(ctx context.Context) (*SponsorSet, error) {
	endpoint := c.queryURL(sponsorQuery)

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, errors.WrapAPI("cms", endpoint, 0, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "cms response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("cms query failed")
		return nil, &errors.APIError{
			Service:    "cms",
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    "page query rejected",
			Body:       string(body),
		}
	}

	var payload queryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.WrapParse("json", "cms query response", err)
	}

	set := flatten(payload.Result)
	c.logger.Debug().
		Int("pages", len(payload.Result)).
		Int("sponsors", len(set.Sponsors)).
		Int("supporting", len(set.SupportingSponsors)).
		Msg("fetched sponsor entries")
	return set, nil
}

// queryURL builds the query API URL for the configured dataset and perspective.
func (c *Client) queryURL(query string) string {
	params := url.Values{}
	params.Set("query", query)
	params.Set("perspective", c.perspective)
	return fmt.Sprintf("%s/%s/data/query/%s?%s",
		c.baseURL, constants.CMSAPIVersion, c.dataset, params.Encode())
}

// flatten collects sponsor arrays across all pages and sections, preserving
// page order then within-page array order. No sorting is applied.
func flatten(pages []pageDocument) *SponsorSet {
	set := &SponsorSet{}
	for _, page := range pages {
		for _, section := range page.Content {
			set.Sponsors = append(set.Sponsors, section.Sponsors...)
			set.SupportingSponsors = append(set.SupportingSponsors, section.SupportingSponsors...)
		}
	}
	set.Combined = append(set.Combined, set.Sponsors...)
	set.Combined = append(set.Combined, set.SupportingSponsors...)
	return set
}
