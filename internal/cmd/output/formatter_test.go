package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sponsorcheck/pkg/reconcile"
)

func sampleResult() *reconcile.Result {
	return &reconcile.Result{
		SponsorTitles:      []string{"Acme Robotics"},
		ReferenceTitles:    []string{"Acme Robotics"},
		MissingInReference: []string{},
		ExtraInReference:   []string{},
		Profiles: []reconcile.ProfileRecord{
			{Title: "Acme Robotics", Slug: "acme-robotics", Exists: true, HasTargetTag: true},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "JSON", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, "ParseFormat(%q)", valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sampleResult()))

	var decoded reconcile.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"Acme Robotics"}, decoded.SponsorTitles)
	require.Len(t, decoded.Profiles, 1)
	assert.True(t, decoded.Profiles[0].HasTargetTag)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, sampleResult()))
	assert.Contains(t, buf.String(), "acme-robotics")
}

func TestTableFormatterIsDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(Format("bogus")).Format(&buf, sampleResult()))
	assert.Contains(t, buf.String(), "Sponsor validation report")
}

func TestDetectFormatExplicitWins(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("yaml"))
	assert.Equal(t, FormatTable, DetectFormat("TABLE"))
}

func TestDetectFormatFollowsTerminal(t *testing.T) {
	want := FormatJSON
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		want = FormatTable
	}
	assert.Equal(t, want, DetectFormat(""))
}
