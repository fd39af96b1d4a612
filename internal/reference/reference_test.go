package reference

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedTable(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, table)

	// Known linked entry.
	slug, ok := table["Acme Robotics"]
	require.True(t, ok)
	require.NotNil(t, slug)
	assert.Equal(t, "acme-robotics", *slug)

	// Known-but-unlinked entry parses as nil, not as the string "null".
	unlinked, ok := table["Vandelay Industries"]
	require.True(t, ok)
	assert.Nil(t, unlinked)
}

func TestSlugsExcludeNullEntries(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	slugs := Slugs(table)
	assert.NotContains(t, slugs, "")
	for _, title := range Unlinked(table) {
		assert.Nil(t, table[title])
	}
	// Linked + unlinked partition the table.
	assert.Equal(t, len(table), len(slugs)+len(Unlinked(table)))
}

func TestSlugsDeterministicOrderAndUnique(t *testing.T) {
	a, b := "shared-slug", "shared-slug"
	table := map[string]*string{
		"Beta Corp":  &b,
		"Alpha Corp": &a,
	}

	slugs := Slugs(table)
	// Duplicate slug values collapse to one submission.
	assert.Equal(t, []string{"shared-slug"}, slugs)

	full, err := Load()
	require.NoError(t, err)
	got := Slugs(full)
	again := Slugs(full)
	assert.Equal(t, got, again, "slug order must be deterministic")
}

func TestTitlesSorted(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	titles := Titles(table)
	assert.True(t, sort.StringsAreSorted(titles))
	assert.Len(t, titles, len(table))
}
