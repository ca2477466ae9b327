package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *KeywordIndex {
	t.Helper()
	idx, err := NewKeywordIndex(defaultListings(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestKeywordIndexDocCount(t *testing.T) {
	idx := newTestIndex(t)

	n, err := idx.DocCount()
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestKeywordIndexMatchesAllTerms(t *testing.T) {
	idx := newTestIndex(t)

	got, err := idx.Match("garden station")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"prop1", "prop2", "prop3"}, got)
}

func TestKeywordIndexMatchesLocation(t *testing.T) {
	idx := newTestIndex(t)

	got, err := idx.Match("Hampstead")
	require.NoError(t, err)
	assert.Equal(t, []string{"prop5"}, got)
}

func TestKeywordIndexBlank(t *testing.T) {
	idx := newTestIndex(t)

	got, err := idx.Match("   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNarrowPreservesCatalogOrder(t *testing.T) {
	idx := newTestIndex(t)
	all := defaultListings(t)

	got, err := Narrow(all, idx, "garden")
	require.NoError(t, err)
	assert.Equal(t, []string{"prop1", "prop2", "prop3", "prop5", "prop6"}, ids(got))

	unchanged, err := Narrow(all, nil, "garden")
	require.NoError(t, err)
	assert.Equal(t, ids(all), ids(unchanged))

	unchanged, err = Narrow(all, idx, " ")
	require.NoError(t, err)
	assert.Equal(t, ids(all), ids(unchanged))
}

func TestRestrict(t *testing.T) {
	all := defaultListings(t)

	got := Restrict(all, []string{"prop7", "prop2", "missing"})
	assert.Equal(t, []string{"prop2", "prop7"}, ids(got))
	assert.Empty(t, Restrict(all, nil))
}
