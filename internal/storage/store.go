package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	recordsBucket = []byte("records")
	metaBucket    = []byte("metadata")
)

// ErrRecordNotFound is returned when a named record has never been written
// or was deleted.
var ErrRecordNotFound = errors.New("record not found")

// DefaultTimeout bounds how long opening the database waits for the file lock.
const DefaultTimeout = 1 * time.Second

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

func NewStore(dbPath string) (*Store, error) {
	return Open(dbPath, DefaultTimeout)
}

// Open opens or creates the database at dbPath, waiting at most timeout for
// another process to release it.
func Open(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{recordsBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.db.Path()
}

// Record returns a handle to the named record. The record need not exist.
func (s *Store) Record(name string) *Record {
	return &Record{store: s, name: name}
}

// Records lists every stored record, sorted by name.
func (s *Store) Records() ([]RecordInfo, error) {
	var infos []RecordInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		return tx.Bucket(recordsBucket).ForEach(func(k, v []byte) error {
			info := RecordInfo{Name: string(k), Size: len(v)}
			if raw := meta.Get(k); raw != nil {
				if err := json.Unmarshal(raw, &info); err != nil {
					return err
				}
			}
			infos = append(infos, info)
			return nil
		})
	})
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, err
}

// Record is a single named blob. Every Write replaces the whole value inside
// one bbolt update transaction, so a reader sees either the old snapshot or
// the new one.
type Record struct {
	store *Store
	name  string
}

func (r *Record) Name() string { return r.name }

// Read returns a copy of the stored bytes, or ErrRecordNotFound.
func (r *Record) Read() ([]byte, error) {
	var out []byte
	err := r.store.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(recordsBucket).Get([]byte(r.name))
		if data == nil {
			return ErrRecordNotFound
		}
		// bbolt memory is only valid inside the transaction.
		out = append([]byte(nil), data...)
		return nil
	})
	return out, err
}

// Write stores data under the record's name along with its metadata.
func (r *Record) Write(data []byte) error {
	info := RecordInfo{Name: r.name, Size: len(data), UpdatedAt: r.store.now().UTC()}
	meta, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		if data == nil {
			data = []byte{}
		}
		if err := tx.Bucket(recordsBucket).Put([]byte(r.name), data); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(r.name), meta)
	})
}

// Delete removes the record. Deleting a missing record is not an error.
func (r *Record) Delete() error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(recordsBucket).Delete([]byte(r.name)); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Delete([]byte(r.name))
	})
}

// Info returns the record's metadata, or ErrRecordNotFound.
func (r *Record) Info() (RecordInfo, error) {
	var info RecordInfo
	err := r.store.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(recordsBucket).Get([]byte(r.name))
		if data == nil {
			return ErrRecordNotFound
		}
		info = RecordInfo{Name: r.name, Size: len(data)}
		if raw := tx.Bucket(metaBucket).Get([]byte(r.name)); raw != nil {
			return json.Unmarshal(raw, &info)
		}
		return nil
	})
	return info, err
}
