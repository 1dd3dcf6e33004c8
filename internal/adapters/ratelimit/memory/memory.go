// Package memory is the in-process counter store behind the upload rate
// limiter. Suitable for a single instance; multi-instance deployments use
// the redis store instead.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type window struct {
	count   int
	resetAt time.Time
}

// Store counts events per key within fixed windows.
type Store struct {
	mu      sync.Mutex
	entries map[string]*window
	now     func() time.Time
}

// NewStore creates an empty counter store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

var _ port.CounterStore = (*Store)(nil)

// Incr bumps the counter for key and returns the new count plus the moment
// the window resets. An expired window restarts at one.
func (s *Store) Incr(ctx context.Context, key string, windowSize time.Duration) (int, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return 0, time.Time{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.entries[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(windowSize)}
		s.entries[key] = w
	}
	w.count++

	// Drop expired windows opportunistically so the map stays bounded.
	for k, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, k)
		}
	}

	return w.count, w.resetAt, nil
}
