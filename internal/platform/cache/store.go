// Package cache provides a small TTL cache for provider-backed reads.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/platform/resilience"
)

// Store caches loaded values per key for a fixed TTL and coalesces
// concurrent loads of the same key through singleflight. A TTL of zero
// keeps entries forever.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	flight  resilience.SingleFlight
}

type entry struct {
	value    any
	storedAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// GetOrLoad returns the cached value for key, loading it at most once per
// expiry window even under concurrent callers. Load failures are not
// cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if key == "" {
		return nil, fmt.Errorf("cache key cannot be empty")
	}

	if value, ok := s.lookup(key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// another flight may have filled the entry while we waited
		if cached, ok := s.lookup(key); ok {
			return cached, nil
		}
		loaded, loadErr := load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.store(key, loaded)
		return loaded, nil
	})
	return value, err
}

func (s *Store) lookup(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && time.Since(e.storedAt) >= s.ttl {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) store(key string, value any) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, storedAt: time.Now()}
	s.mu.Unlock()
}
