package memory

import (
	"context"
	"sync"
)

// KeyValueStore keeps blobs in process memory.
type KeyValueStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{items: make(map[string][]byte)}
}

func (s *KeyValueStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), value...), true, nil
}

func (s *KeyValueStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = append([]byte(nil), value...)
	return nil
}
