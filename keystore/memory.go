package keystore

import "sync"

// MemoryStore is an in-process Store for tests and ephemeral sessions.
// Nothing survives a restart.
type MemoryStore struct {
	mu   sync.Mutex
	pair Pair
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(pair Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	return nil
}

func (s *MemoryStore) Access() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.Access, nil
}

func (s *MemoryStore) Refresh() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.Refresh, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = Pair{}
	return nil
}
