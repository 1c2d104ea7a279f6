package storage

import "sync"

// MemoryStore is an in-memory Store used in tests and as a fallback when
// no database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites, when set, makes Set return the given error. Tests use it
	// to exercise the persistence-failure path.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := append([]byte(nil), value...)
	return cp, true, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
