package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testLockPrefix = "media-catalog"
	testLockKey    = "refresh"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisLocker_Acquire_Success(t *testing.T) {
	_, client := setupTestRedis(t)
	locker := NewRedisLocker(client, testLockPrefix, zap.NewNop())

	acquired, err := locker.Acquire(context.Background(), testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_Acquire_NamespacesKeys(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisLocker(client, testLockPrefix, zap.NewNop())

	acquired, err := locker.Acquire(context.Background(), testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	assert.True(t, mr.Exists(testLockPrefix+":"+testLockKey),
		"lock keys are stored under the service prefix")
	assert.False(t, mr.Exists(testLockKey))
}

func TestRedisLocker_Acquire_AlreadyHeld(t *testing.T) {
	_, client := setupTestRedis(t)

	locker1 := NewRedisLocker(client, testLockPrefix, zap.NewNop())
	locker2 := NewRedisLocker(client, testLockPrefix, zap.NewNop())
	ctx := context.Background()

	acquired1, err := locker1.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired1)

	acquired2, _ := locker2.Acquire(ctx, testLockKey, 5*time.Second)
	assert.False(t, acquired2, "a held lock cannot be acquired again")
}

func TestRedisLocker_PrefixesIsolateServices(t *testing.T) {
	_, client := setupTestRedis(t)

	locker1 := NewRedisLocker(client, "service-a", zap.NewNop())
	locker2 := NewRedisLocker(client, "service-b", zap.NewNop())
	ctx := context.Background()

	acquired1, err := locker1.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired1)

	acquired2, err := locker2.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired2, "identical keys under different prefixes do not contend")
}

func TestRedisLocker_Release_Success(t *testing.T) {
	_, client := setupTestRedis(t)
	locker := NewRedisLocker(client, testLockPrefix, zap.NewNop())
	ctx := context.Background()

	acquired, err := locker.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, locker.Release(ctx, testLockKey))

	acquired2, err := locker.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired2, "a released lock is acquirable again")
}

func TestRedisLocker_Release_NotOwned(t *testing.T) {
	_, client := setupTestRedis(t)

	locker1 := NewRedisLocker(client, testLockPrefix, zap.NewNop())
	locker2 := NewRedisLocker(client, testLockPrefix, zap.NewNop())
	ctx := context.Background()

	acquired, err := locker1.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	// Releasing a lock this instance never took is a no-op.
	require.NoError(t, locker2.Release(ctx, testLockKey))
	require.NoError(t, locker1.Release(ctx, testLockKey))
}

func TestRedisLocker_ConcurrentAcquisition(t *testing.T) {
	_, client := setupTestRedis(t)

	const numInstances = 5
	results := make(chan bool, numInstances)
	ctx := context.Background()

	for i := 0; i < numInstances; i++ {
		go func() {
			locker := NewRedisLocker(client, testLockPrefix, zap.NewNop())
			acquired, _ := locker.Acquire(ctx, testLockKey, 2*time.Second)
			results <- acquired
		}()
	}

	successCount := 0
	for i := 0; i < numInstances; i++ {
		if <-results {
			successCount++
		}
	}

	assert.Equal(t, 1, successCount, "exactly one instance wins the lock")
}

func TestRedisLocker_ContextCancellation(t *testing.T) {
	_, client := setupTestRedis(t)
	locker := NewRedisLocker(client, testLockPrefix, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquired, err := locker.Acquire(ctx, testLockKey, 5*time.Second)
	assert.Error(t, err)
	assert.False(t, acquired)
}
