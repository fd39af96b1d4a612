package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sponsorcheck/pkg/errors"
	"github.com/agentstation/sponsorcheck/pkg/logging"
)

const pagesJSON = `{
	"result": [
		{
			"title": "Home",
			"content": [
				{
					"sponsors": [
						{"title": "Acme Robotics", "_key": "a1"},
						{"title": "Globex", "_key": "a2"}
					],
					"supportingSponsors": [
						{"title": "Initech", "_key": "a3"}
					]
				},
				{"sponsors": null}
			]
		},
		{
			"title": "Partners",
			"content": [
				{
					"sponsors": [{"title": "Hooli", "_key": "b1"}],
					"supportingSponsors": [{"_key": "b2"}]
				}
			]
		},
		{"title": "Empty", "content": null}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := New("testproj", "production", "sk-token", "published",
		WithBaseURL(server.URL),
		WithLogger(&logging.Nop))
	return client, server
}

func TestFetchSponsorsFlattensAcrossPages(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-token", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "/data/query/production")
		assert.Equal(t, "published", r.URL.Query().Get("perspective"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pagesJSON))
	})

	set, err := client.FetchSponsors(context.Background())
	require.NoError(t, err)

	// Insertion order across pages, then within-page array order.
	assert.Equal(t, []string{"Acme Robotics", "Globex", "Hooli"}, titles(set.Sponsors))
	assert.Equal(t, []string{"Initech", ""}, titles(set.SupportingSponsors))
	assert.Len(t, set.Combined, 5)
	assert.Equal(t, "Acme Robotics", set.Combined[0].Title)
	assert.Equal(t, "", set.Combined[4].Title) // untitled entry survives
}

func TestFetchSponsorsTitlesIncludesEmpty(t *testing.T) {
	set := &SponsorSet{Combined: []Sponsor{{Title: "Acme Robotics"}, {Key: "x"}}}
	assert.Equal(t, []string{"Acme Robotics", ""}, set.Titles())
}

func TestFetchSponsorsEmptyResult(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": []}`))
	})

	set, err := client.FetchSponsors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set.Sponsors)
	assert.Empty(t, set.SupportingSponsors)
	assert.Empty(t, set.Combined)
}

func TestFetchSponsorsNon2xxIsFatal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid token"}`))
	})

	_, err := client.FetchSponsors(context.Background())
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	// The raw body is preserved for diagnosis.
	assert.Contains(t, apiErr.Body, "invalid token")
}

func TestFetchSponsorsUnreachableIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // fetch against a dead server

	client := New("testproj", "production", "sk-token", "",
		WithBaseURL(server.URL),
		WithLogger(&logging.Nop))

	_, err := client.FetchSponsors(context.Background())
	assert.Error(t, err)
}

func TestPerspectiveDefaulting(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "published", r.URL.Query().Get("perspective"))
		_, _ = w.Write([]byte(`{"result": []}`))
	})
	client.perspective = "published"

	_, err := client.FetchSponsors(context.Background())
	require.NoError(t, err)

	// Zero-value perspective falls back to the default at construction.
	c := New("p", "d", "t", "")
	assert.Equal(t, "published", c.perspective)
}

func titles(sponsors []Sponsor) []string {
	out := make([]string, 0, len(sponsors))
	for _, s := range sponsors {
		out = append(out, s.Title)
	}
	return out
}
