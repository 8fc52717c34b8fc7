package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Ahmed-Sermani/bucketrank/store"
	"golang.org/x/xerrors"
)

var _ store.Store = (*InMemoryStore)(nil)

// InMemoryStore is a map-backed store.Store implementation. It is used
// for local development and as a test double; it is safe for concurrent
// access.
type InMemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryStore creates a new empty in-memory object store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{objects: make(map[string][]byte)}
}

// Put inserts or replaces the named object.
func (s *InMemoryStore) Put(name string, content []byte) {
	s.mu.Lock()
	s.objects[name] = append([]byte(nil), content...)
	s.mu.Unlock()
}

func (s *InMemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	var names []string
	for name := range s.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

func (s *InMemoryStore) Fetch(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	content, exists := s.objects[name]
	s.mu.RUnlock()

	if !exists {
		return nil, xerrors.Errorf("fetch %q: %w", name, store.ErrNotFound)
	}
	// Clone so callers cannot mutate the stored contents.
	return append([]byte(nil), content...), nil
}
