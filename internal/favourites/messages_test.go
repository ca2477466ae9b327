package favourites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMessages(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	changed, err := s.Apply(AddToFavourites{ID: "prop4"}, c.Get)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.Apply(AddToFavourites{ID: "prop4"}, c.Get)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = s.Apply(AddToFavourites{ID: "prop5"}, c.Get)
	require.NoError(t, err)
	assert.Equal(t, []string{"prop4", "prop5"}, s.IDs())

	changed, err = s.Apply(RemoveFromFavourites{ID: "prop4"}, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"prop5"}, s.IDs())

	changed, err = s.Apply(ClearFavourites{}, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 4, backend.Writes())
}

func TestApplyUnknownListing(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	_, err := s.Apply(AddToFavourites{ID: "prop99"}, c.Get)
	assert.ErrorIs(t, err, ErrUnknownListing)

	_, err = s.Apply(AddToFavourites{ID: "prop1"}, nil)
	assert.ErrorIs(t, err, ErrUnknownListing)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, backend.Writes())
}

func TestApplyRemoveUnknownIsNoop(t *testing.T) {
	backend := NewMemoryBackend()
	s := New(backend)

	changed, err := s.Apply(RemoveFromFavourites{ID: "prop99"}, nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, backend.Writes())
}
