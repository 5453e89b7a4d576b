package storage

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a process-local Provider used for tests and dry runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	// FailWrites makes Set and Delete return an error, for exercising
	// persistence failure paths.
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[string][]byte)
	}
	return nil
}

func (s *MemoryStore) Load() error  { return s.Init() }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.records == nil {
		return nil, ErrNotLoaded
	}
	v, ok := s.records[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		return ErrNotLoaded
	}
	if s.FailWrites {
		return fmt.Errorf("write %q: simulated failure", key)
	}
	s.records[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		return ErrNotLoaded
	}
	if s.FailWrites {
		return fmt.Errorf("delete %q: simulated failure", key)
	}
	delete(s.records, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.records == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
