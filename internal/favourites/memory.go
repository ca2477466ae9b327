package favourites

import (
	"sync"

	"github.com/pders01/roost/internal/storage"
)

// MemoryBackend is an in-process Backend. It counts writes and can be told to
// fail them.
type MemoryBackend struct {
	mu      sync.Mutex
	data    []byte
	written bool
	writes  int
	failErr error
}

// NewMemoryBackend returns an empty backend; Read reports
// storage.ErrRecordNotFound until the first Write.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWith returns a backend already holding data.
func NewMemoryBackendWith(data []byte) *MemoryBackend {
	return &MemoryBackend{data: append([]byte(nil), data...), written: true}
}

// Read returns a copy of the last written snapshot.
func (m *MemoryBackend) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.written {
		return nil, storage.ErrRecordNotFound
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores a copy of data.
func (m *MemoryBackend) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.data = append([]byte(nil), data...)
	m.written = true
	m.writes++
	return nil
}

// Writes is the number of successful writes.
func (m *MemoryBackend) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FailWrites makes every following Write return err; nil restores normal
// behaviour.
func (m *MemoryBackend) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}
