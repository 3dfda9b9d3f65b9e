package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/temberanawe/ussd/internal/domain"
)

type countingStore struct {
	Store
	sweeps atomic.Int64
}

func (s *countingStore) EvictIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	s.sweeps.Add(1)
	return s.Store.EvictIdleSince(ctx, cutoff)
}

func TestSweeper_EvictsOnInterval(t *testing.T) {
	clock := newFakeClock(testStart)
	mem := NewMemoryStore(clock.Now)
	store := &countingStore{Store: mem}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = mem.WithSession(ctx, "idle", func(s *domain.Session) error { return nil })
	clock.Advance(time.Hour)

	StartSweeper(ctx, store, 10*time.Millisecond, 30*time.Minute, clock.Now)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		count, _ := mem.Count(ctx)
		if count == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	count, _ := mem.Count(ctx)
	if count != 0 {
		t.Errorf("Expected idle session evicted by sweeper, %d remain", count)
	}
	if store.sweeps.Load() == 0 {
		t.Error("Expected at least one sweep")
	}
}

func TestSweeper_StopsOnContextCancel(t *testing.T) {
	clock := newFakeClock(testStart)
	mem := NewMemoryStore(clock.Now)
	store := &countingStore{Store: mem}
	ctx, cancel := context.WithCancel(context.Background())

	StartSweeper(ctx, store, 5*time.Millisecond, 30*time.Minute, clock.Now)
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	before := store.sweeps.Load()
	time.Sleep(30 * time.Millisecond)
	if after := store.sweeps.Load(); after != before {
		t.Errorf("Expected no sweeps after cancel, got %d more", after-before)
	}
}
