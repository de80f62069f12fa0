package cache

import (
	"context"
	"fmt"
	"sync"
)

// TallyKey is the single durable key holding the last known tally.
const TallyKey = "votos"

// Store persists the last confirmed tally as counts aligned to the catalogue.
type Store interface {
	// Load returns the cached counts, or nil when nothing has been saved yet.
	Load(ctx context.Context) ([]int, error)
	// Save overwrites the cached counts.
	Save(ctx context.Context, counts []int) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates the store for backend. path is ignored by the memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// MemoryStore keeps the tally for the life of the process only.
type MemoryStore struct {
	mu     sync.RWMutex
	counts []int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.counts == nil {
		return nil, nil
	}
	out := make([]int, len(s.counts))
	copy(out, s.counts)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, counts []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts = make([]int, len(counts))
	copy(s.counts, counts)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
