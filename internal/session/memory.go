package session

import (
	"context"
	"sync"
	"time"

	"github.com/temberanawe/ussd/internal/domain"
)

type entry struct {
	mu   sync.Mutex
	sess *domain.Session
}

// MemoryStore is the default in-process Store. A map-level mutex guards the
// key set; a per-entry mutex serializes turns and eviction for one caller.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryStore creates an empty store. A nil clock means time.Now.
func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]*entry),
		now:     clock,
	}
}

// WithSession implements Store.
func (s *MemoryStore) WithSession(ctx context.Context, callerID string, fn func(sess *domain.Session) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mu.Lock()
		e, ok := s.entries[callerID]
		if !ok {
			e = &entry{sess: domain.NewSession(callerID, s.now())}
			s.entries[callerID] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		// The sweep may have evicted this entry between the map read and
		// the entry lock; retry against the fresh map state if so.
		s.mu.Lock()
		current := s.entries[callerID]
		s.mu.Unlock()
		if current != e {
			e.mu.Unlock()
			continue
		}

		e.sess.LastActivity = s.now()
		err := fn(e.sess)
		e.mu.Unlock()
		return err
	}
}

// EvictIdleSince implements Store.
func (s *MemoryStore) EvictIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	candidates := make(map[string]*entry, len(s.entries))
	for id, e := range s.entries {
		candidates[id] = e
	}
	s.mu.Unlock()

	evicted := 0
	for id, e := range candidates {
		if err := ctx.Err(); err != nil {
			return evicted, err
		}
		e.mu.Lock()
		if e.sess.LastActivity.Before(cutoff) {
			s.mu.Lock()
			if s.entries[id] == e {
				delete(s.entries, id)
				evicted++
			}
			s.mu.Unlock()
		}
		e.mu.Unlock()
	}
	return evicted, nil
}

// Count implements Store.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}
