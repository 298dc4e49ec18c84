package locker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements DistributedLocker on top of Redsync's Redlock
// mutexes. Every key is namespaced under a prefix so that several services
// sharing a Redis instance cannot collide on lock names.
type RedisLocker struct {
	rs      *redsync.Redsync
	prefix  string
	logger  *zap.Logger
	mutexes map[string]*redsync.Mutex
	mu      sync.Mutex
}

// NewRedisLocker creates a Redis-backed locker. prefix namespaces all lock
// keys (e.g. "media-catalog" turns "refresh" into "media-catalog:refresh").
func NewRedisLocker(client *redis.Client, prefix string, logger *zap.Logger) *RedisLocker {
	pool := goredis.NewPool(client)

	return &RedisLocker{
		rs:      redsync.New(pool),
		prefix:  prefix,
		logger:  logger,
		mutexes: make(map[string]*redsync.Mutex),
	}
}

func (r *RedisLocker) lockName(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// Acquire attempts a single non-blocking acquisition of the named lock.
// Returns false without error when another instance already holds it. The
// lock expires after ttl if never released, so a crashed holder cannot
// deadlock the cluster.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	name := r.lockName(key)
	mutex := r.rs.NewMutex(
		name,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	err := mutex.LockContext(ctx)
	if err != nil {
		// Redsync reports contention either as ErrFailed or as a wrapped
		// "lock already taken" error depending on the node responses.
		if err == redsync.ErrFailed || strings.Contains(err.Error(), "lock already taken") {
			r.logger.Debug("lock held by another instance", zap.String("lock", name))
			return false, nil
		}
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}

	r.mu.Lock()
	r.mutexes[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired",
		zap.String("lock", name),
		zap.Duration("ttl", ttl),
	)

	return true, nil
}

// Release releases the lock if this instance owns it. Redsync verifies the
// owner token, so releasing a lock held elsewhere is a no-op, not an error.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, exists := r.mutexes[key]
	if exists {
		delete(r.mutexes, key)
	}
	r.mu.Unlock()

	name := r.lockName(key)
	if !exists {
		r.logger.Debug("lock not owned by this instance", zap.String("lock", name))
		return nil
	}

	ok, err := mutex.UnlockContext(ctx)
	if err != nil {
		return fmt.Errorf("release lock %s: %w", name, err)
	}

	if ok {
		r.logger.Debug("lock released", zap.String("lock", name))
	} else {
		r.logger.Debug("lock already expired", zap.String("lock", name))
	}

	return nil
}
