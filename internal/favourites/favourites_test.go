package favourites

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/storage"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func mustGet(t *testing.T, c *catalog.Catalog, id string) catalog.Listing {
	t.Helper()
	l, ok := c.Get(id)
	require.True(t, ok, "listing %s", id)
	return l
}

func TestAddIsIdempotent(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	changed, err := s.Add(mustGet(t, c, "prop1"))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.Add(mustGet(t, c, "prop1"))
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, backend.Writes())
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := testCatalog(t)
	s := New(NewMemoryBackend())

	for _, id := range []string{"prop5", "prop1", "prop3"} {
		_, err := s.Add(mustGet(t, c, id))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"prop5", "prop1", "prop3"}, s.IDs())
}

func TestAddRejectsEmptyID(t *testing.T) {
	s := New(NewMemoryBackend())

	_, err := s.Add(catalog.Listing{})
	assert.ErrorIs(t, err, ErrUnknownListing)
}

func TestRemoveNonMemberDoesNotWrite(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	_, err := s.Add(mustGet(t, c, "prop2"))
	require.NoError(t, err)
	before, err := backend.Read()
	require.NoError(t, err)

	changed, err := s.Remove("prop7")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, backend.Writes())

	after, err := backend.Read()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRemove(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	for _, id := range []string{"prop1", "prop2", "prop3"} {
		_, err := s.Add(mustGet(t, c, id))
		require.NoError(t, err)
	}

	changed, err := s.Remove("prop2")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"prop1", "prop3"}, s.IDs())
	assert.False(t, s.Contains("prop2"))
	assert.Equal(t, 4, backend.Writes())
}

func TestClearPersistsEmpty(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	_, err := s.Add(mustGet(t, c, "prop1"))
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	assert.Equal(t, 0, s.Len())
	data, err := backend.Read()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	// Clearing an empty set still writes.
	require.NoError(t, s.Clear())
	assert.Equal(t, 3, backend.Writes())
}

func TestRestartRestoresSameSet(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	for _, id := range []string{"prop6", "prop2", "prop4"} {
		_, err := s.Add(mustGet(t, c, id))
		require.NoError(t, err)
	}
	want := s.List()

	restarted := New(backend)
	assert.Equal(t, RestoredSnapshot, restarted.Restore())
	assert.Equal(t, []string{"prop6", "prop2", "prop4"}, restarted.IDs())
	assert.Equal(t, want, restarted.List())
}

func TestRestoreMissingStartsEmpty(t *testing.T) {
	s, outcome := Open(NewMemoryBackend())
	assert.Equal(t, RestoredNothing, outcome)
	assert.Equal(t, 0, s.Len())
}

func TestRestoreCorruptFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"object instead of array", `{"id":"prop1"}`},
		{"entry without id", `[{"id":"prop1"},{"price":5}]`},
		{"wrong field type", `[{"id":"prop1","price":"cheap"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryBackendWith([]byte(tt.data))
			s, outcome := Open(backend)
			assert.Equal(t, RecoveredFromCorruption, outcome)
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 0, backend.Writes())
		})
	}
}

func TestRestoreCollapsesDuplicates(t *testing.T) {
	backend := NewMemoryBackendWith([]byte(`[{"id":"prop1","price":1},{"id":"prop2"},{"id":"prop1","price":2}]`))

	s, outcome := Open(backend)
	assert.Equal(t, RestoredSnapshot, outcome)
	require.Equal(t, []string{"prop1", "prop2"}, s.IDs())
	assert.Equal(t, 1, s.List()[0].Price)
}

func TestRestoreReadErrorFallsBackToEmpty(t *testing.T) {
	s, outcome := Open(failingReader{})
	assert.Equal(t, RecoveredFromCorruption, outcome)
	assert.Equal(t, 0, s.Len())
}

type failingReader struct{}

func (failingReader) Read() ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingReader) Write([]byte) error    { return nil }

func TestFailedWriteRollsBack(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	_, err := s.Add(mustGet(t, c, "prop1"))
	require.NoError(t, err)

	boom := errors.New("write failed")
	backend.FailWrites(boom)

	_, err = s.Add(mustGet(t, c, "prop2"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"prop1"}, s.IDs())

	_, err = s.Remove("prop1")
	assert.ErrorIs(t, err, boom)
	assert.True(t, s.Contains("prop1"))

	assert.ErrorIs(t, s.Clear(), boom)
	assert.Equal(t, 1, s.Len())

	backend.FailWrites(nil)
	restarted, _ := Open(backend)
	assert.Equal(t, s.IDs(), restarted.IDs())
}

func TestSnapshotIsDenormalized(t *testing.T) {
	c := testCatalog(t)
	backend := NewMemoryBackend()
	s := New(backend)

	l := mustGet(t, c, "prop3")
	_, err := s.Add(l)
	require.NoError(t, err)

	data, err := backend.Read()
	require.NoError(t, err)
	var stored []catalog.Listing
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, l.Location, stored[0].Location)
	assert.Equal(t, l.Price, stored[0].Price)
	assert.Equal(t, l.AddedOn(), stored[0].AddedOn())
}

func TestListReturnsCopy(t *testing.T) {
	c := testCatalog(t)
	s := New(NewMemoryBackend())
	_, err := s.Add(mustGet(t, c, "prop1"))
	require.NoError(t, err)

	list := s.List()
	list[0].ID = "mutated"
	assert.True(t, s.Contains("prop1"))
}

func TestBboltRecordBackend(t *testing.T) {
	c := testCatalog(t)
	dbPath := filepath.Join(t.TempDir(), "roost.db")

	store, err := storage.NewStore(dbPath)
	require.NoError(t, err)

	favs, outcome := Open(store.Record(RecordName))
	assert.Equal(t, RestoredNothing, outcome)
	_, err = favs.Add(mustGet(t, c, "prop1"))
	require.NoError(t, err)
	_, err = favs.Add(mustGet(t, c, "prop7"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := storage.NewStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	restored, outcome := Open(reopened.Record(RecordName))
	assert.Equal(t, RestoredSnapshot, outcome)
	assert.Equal(t, []string{"prop1", "prop7"}, restored.IDs())
}
