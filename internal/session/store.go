// Package session provides per-caller session storage with exclusive
// per-key access and idle-session eviction.
package session

import (
	"context"
	"time"

	"github.com/temberanawe/ussd/internal/domain"
)

// Store keys sessions exclusively by caller id; no operation can observe
// another caller's record.
type Store interface {
	// WithSession loads (creating with defaults if absent) the caller's
	// session, refreshes its last-activity timestamp, and runs fn while
	// holding exclusive access to that one key. Concurrent turns for the
	// same caller serialize; different callers proceed independently. The
	// session must not be retained after fn returns.
	WithSession(ctx context.Context, callerID string, fn func(s *domain.Session) error) error

	// EvictIdleSince removes every session whose last activity is before
	// cutoff and returns the number removed. Eviction of a key is mutually
	// exclusive with an in-flight turn on that key.
	EvictIdleSince(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}
