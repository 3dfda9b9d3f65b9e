package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/temberanawe/ussd/internal/domain"
)

const defaultRedisPrefix = "tembera:session:"

// RedisStore keeps sessions in Redis as JSON values plus a ZSET index
// scored by last-activity, which the idle sweep ranges over. Per-key
// exclusivity is a process-local mutex, so it assumes a single server
// instance owns the dialog traffic.
type RedisStore struct {
	client *backend.Client
	prefix string
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisStore connects to Redis at addr. A nil clock means time.Now.
func NewRedisStore(addr, password string, db int, clock func() time.Time) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, clock)
}

// NewRedisStoreFromClient wraps an existing client (used by tests).
func NewRedisStoreFromClient(client *backend.Client, clock func() time.Time) *RedisStore {
	if clock == nil {
		clock = time.Now
	}
	return &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		now:    clock,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(callerID string) string {
	return s.prefix + callerID
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "index"
}

func (s *RedisStore) keyLock(callerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[callerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[callerID] = l
	}
	return l
}

// WithSession implements Store.
func (s *RedisStore) WithSession(ctx context.Context, callerID string, fn func(sess *domain.Session) error) error {
	l := s.keyLock(callerID)
	l.Lock()
	defer l.Unlock()

	sess, err := s.load(ctx, callerID)
	if err != nil {
		return err
	}
	if sess == nil {
		sess = domain.NewSession(callerID, s.now())
	}
	sess.LastActivity = s.now()

	fnErr := fn(sess)

	if err := s.save(ctx, sess); err != nil {
		return err
	}
	return fnErr
}

func (s *RedisStore) load(ctx context.Context, callerID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(callerID)).Result()
	if err == backend.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", callerID, err)
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", callerID, err)
	}
	return &sess, nil
}

func (s *RedisStore) save(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.CallerID, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sess.CallerID), data, 0)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(sess.LastActivity.Unix()),
		Member: sess.CallerID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session %s: %w", sess.CallerID, err)
	}
	return nil
}

// EvictIdleSince implements Store.
func (s *RedisStore) EvictIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	ids, err := s.client.ZRangeByScore(ctx, s.indexKey(), &backend.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("(%d", cutoff.Unix()),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("range idle sessions: %w", err)
	}

	evicted := 0
	for _, id := range ids {
		l := s.keyLock(id)
		l.Lock()
		// Re-check under the key lock: a turn may have touched the
		// session since the range was taken.
		score, err := s.client.ZScore(ctx, s.indexKey(), id).Result()
		if err == backend.Nil {
			l.Unlock()
			continue
		}
		if err != nil {
			l.Unlock()
			return evicted, fmt.Errorf("score session %s: %w", id, err)
		}
		if time.Unix(int64(score), 0).Before(cutoff) {
			pipe := s.client.Pipeline()
			pipe.Del(ctx, s.key(id))
			pipe.ZRem(ctx, s.indexKey(), id)
			if _, err := pipe.Exec(ctx); err != nil {
				l.Unlock()
				return evicted, fmt.Errorf("evict session %s: %w", id, err)
			}
			evicted++
		}
		l.Unlock()
	}
	return evicted, nil
}

// Count implements Store.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return int(n), nil
}
