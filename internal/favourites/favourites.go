// Package favourites keeps the user's saved listings: an ordered set, unique
// by listing id, written through to durable storage after every change.
package favourites

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/debuglog"
	"github.com/pders01/roost/internal/storage"
)

// RecordName is the storage record holding the favourites snapshot.
const RecordName = "favourites"

// ErrUnknownListing is returned when a message names a listing id that the
// catalog does not contain.
var ErrUnknownListing = errors.New("unknown listing")

// Backend is the durable home of the snapshot. Read returns
// storage.ErrRecordNotFound when nothing has been written yet.
// *storage.Record satisfies it.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// RestoreOutcome describes what Restore found in the backend.
type RestoreOutcome int

const (
	// RestoredNothing means no snapshot existed; the set starts empty.
	RestoredNothing RestoreOutcome = iota
	// RestoredSnapshot means the persisted snapshot was loaded.
	RestoredSnapshot
	// RecoveredFromCorruption means the snapshot was unreadable and the set
	// was reset to empty.
	RecoveredFromCorruption
)

func (o RestoreOutcome) String() string {
	switch o {
	case RestoredSnapshot:
		return "restored"
	case RecoveredFromCorruption:
		return "recovered-from-corruption"
	default:
		return "empty"
	}
}

// Store is the favourites set. Mutations are serialized and each one returns
// only after the backend holds the new snapshot; a failed write leaves the
// in-memory set unchanged.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	items   []catalog.Listing
}

// New returns an empty store bound to backend. Call Restore to load the
// persisted snapshot.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Open is New followed by Restore.
func Open(backend Backend) (*Store, RestoreOutcome) {
	s := New(backend)
	return s, s.Restore()
}

// Restore replaces the in-memory set with the persisted snapshot. A missing
// snapshot yields an empty set; an unreadable one is logged and also yields an
// empty set.
func (s *Store) Restore() RestoreOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	data, err := s.backend.Read()
	if errors.Is(err, storage.ErrRecordNotFound) {
		return RestoredNothing
	}
	if err != nil {
		debuglog.Warnf("favourites: reading snapshot failed, starting empty: %v", err)
		return RecoveredFromCorruption
	}

	items, err := decodeSnapshot(data)
	if err != nil {
		debuglog.Warnf("favourites: discarding corrupt snapshot: %v", err)
		return RecoveredFromCorruption
	}
	s.items = items
	debuglog.WithFields(map[string]interface{}{"count": len(items)}).Debugf("favourites restored")
	return RestoredSnapshot
}

// Add appends l unless its id is already present. Adding a present id is a
// no-op that does not touch storage. The returned bool reports whether the
// set changed.
func (s *Store) Add(l catalog.Listing) (bool, error) {
	if l.ID == "" {
		return false, fmt.Errorf("%w: empty id", ErrUnknownListing)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(l.ID) >= 0 {
		return false, nil
	}
	next := make([]catalog.Listing, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, l)
	if err := s.commit(next); err != nil {
		return false, err
	}
	debuglog.WithFields(map[string]interface{}{"listing": l.ID, "action": "add"}).Debugf("favourite added")
	return true, nil
}

// Remove deletes id from the set. Removing an absent id is a no-op that does
// not touch storage.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := make([]catalog.Listing, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	if err := s.commit(next); err != nil {
		return false, err
	}
	debuglog.WithFields(map[string]interface{}{"listing": id, "action": "remove"}).Debugf("favourite removed")
	return true, nil
}

// Clear empties the set and persists the empty snapshot, even when the set
// was already empty.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(nil); err != nil {
		return err
	}
	debuglog.Debugf("favourites cleared")
	return nil
}

// Contains reports whether id is saved.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// List returns the favourites in insertion order.
func (s *Store) List() []catalog.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Listing, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the favourite ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.items))
	for i := range s.items {
		ids[i] = s.items[i].ID
	}
	return ids
}

// Len returns the number of saved listings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// commit persists next and, only on success, makes it the in-memory state.
// Callers hold s.mu.
func (s *Store) commit(next []catalog.Listing) error {
	data, err := encodeSnapshot(next)
	if err != nil {
		return fmt.Errorf("encoding favourites: %w", err)
	}
	if err := s.backend.Write(data); err != nil {
		return fmt.Errorf("persisting favourites: %w", err)
	}
	s.items = next
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func encodeSnapshot(items []catalog.Listing) ([]byte, error) {
	if items == nil {
		items = []catalog.Listing{}
	}
	return json.Marshal(items)
}

// decodeSnapshot parses a persisted array of listings. Every entry must carry
// an id; repeated ids keep their first occurrence.
func decodeSnapshot(data []byte) ([]catalog.Listing, error) {
	var raw []catalog.Listing
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	items := make([]catalog.Listing, 0, len(raw))
	for i, l := range raw {
		if l.ID == "" {
			return nil, fmt.Errorf("entry %d has no id", i)
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}
		items = append(items, l)
	}
	return items, nil
}
