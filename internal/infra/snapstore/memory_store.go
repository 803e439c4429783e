// Package snapstore caches weather snapshots per canonical city name.
package snapstore

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderchen5966/weathermix/internal/domain/weather"
)

type entry struct {
	snapshot  weather.Snapshot
	expiresAt time.Time
}

// MemoryStore is an in-memory snapshot cache for tests/dev and as the
// fallback when no Valkey address is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements weather.SnapshotStore.
func (s *MemoryStore) Get(_ context.Context, city string) (weather.Snapshot, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[city]
	s.mu.RUnlock()
	if !ok {
		return weather.Snapshot{}, false, nil
	}
	if s.expired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, city)
		s.mu.Unlock()
		return weather.Snapshot{}, false, nil
	}
	return e.snapshot, true, nil
}

// Save overwrites any prior entry for the city. A ttl <= 0 stores the
// snapshot without expiry.
func (s *MemoryStore) Save(_ context.Context, city string, snap weather.Snapshot, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[city] = entry{snapshot: snap, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ weather.SnapshotStore = (*MemoryStore)(nil)
