// Package mockstore caches synthesized payloads by concrete request path.
package mockstore

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store maps a concrete request path to the encoded payload first produced for it.
// Entries are never evicted or replaced.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
	group   singleflight.Group
}

func New() *Store {
	return &Store{entries: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrCreate returns the stored payload for key, or runs create once and stores its
// result. Concurrent callers missing on the same key share a single create call, and a
// value is only written if the key is still absent, so every caller observes the same
// bytes. hit is false for the callers that waited on create. A failed create stores
// nothing.
func (s *Store) GetOrCreate(key string, create func() ([]byte, error)) (value []byte, hit bool, err error) {
	if v, ok := s.Get(key); ok {
		return v, true, nil
	}

	res, err, _ := s.group.Do(key, func() (any, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := create()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.entries[key]; ok {
			return existing, nil
		}
		s.entries[key] = v
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.([]byte), false, nil
}
