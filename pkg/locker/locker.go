// Package locker provides distributed locking for coordinating background
// work, such as cache refresh cycles, across service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates exclusive work across instances.
// Implementations must be safe for concurrent use.
type DistributedLocker interface {
	// Acquire attempts to take the lock named by key. Returns true when the
	// lock was taken, false when another instance holds it. The lock expires
	// after ttl if never released, so a ttl equal to the refresh interval
	// doubles as a cooldown between cycles.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock named by key. Releasing a lock this instance
	// does not own is a no-op.
	Release(ctx context.Context, key string) error
}
