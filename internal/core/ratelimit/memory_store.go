package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local WindowStore. Its state is lost on restart.
// Expired entries are dropped when read and swept on every sweepEvery-th
// write.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	writes  int
	now     func() time.Time
}

type memoryEntry struct {
	hits    []time.Time
	expires time.Time
}

const sweepEvery = 256

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, key)
		return nil, nil
	}
	out := make([]time.Time, len(e.hits))
	copy(out, e.hits)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, hits []time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]time.Time, len(hits))
	copy(cp, hits)
	now := s.now()
	s.entries[key] = memoryEntry{hits: cp, expires: now.Add(ttl)}

	s.writes++
	if s.writes%sweepEvery == 0 {
		for k, e := range s.entries {
			if !now.Before(e.expires) {
				delete(s.entries, k)
			}
		}
	}
	return nil
}

// Len reports the number of live and not yet swept entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
