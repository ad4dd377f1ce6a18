package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skischool/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Unlock releases a held lock.
type Unlock func(ctx context.Context) error

// AssignmentLocker serializes check-then-assign sequences for one monitor and
// date range. Lock fails fast with ErrLockHeld instead of waiting.
type AssignmentLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// LockKey builds the lock key for a monitor and the days an assignment spans.
func LockKey(monitorID string, span models.TimeWindow) string {
	return fmt.Sprintf("schedule:assign:%s:%s:%s", monitorID, span.StartDate(), span.EndDate())
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is an AssignmentLocker shared by every instance using the same Redis DB.
type RedisLocker struct {
	Client *redis.Client
}

func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error) {
	token := uuid.New().String()
	ok, err := l.Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.Client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

type memoryLease struct {
	token   uint64
	expires time.Time // zero means no expiry
}

// MemoryLocker is an in-process AssignmentLocker for single-instance deployments and tests.
type MemoryLocker struct {
	mu    sync.Mutex
	seq   uint64
	held  map[string]memoryLease
	clock func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held:  make(map[string]memoryLease),
		clock: time.Now,
	}
}

func (l *MemoryLocker) Lock(_ context.Context, key string, ttl time.Duration) (Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if lease, ok := l.held[key]; ok && (lease.expires.IsZero() || now.Before(lease.expires)) {
		return nil, ErrLockHeld
	}

	l.seq++
	lease := memoryLease{token: l.seq}
	if ttl > 0 {
		lease.expires = now.Add(ttl)
	}
	l.held[key] = lease

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if cur, ok := l.held[key]; ok && cur.token == lease.token {
			delete(l.held, key)
		}
		return nil
	}, nil
}
