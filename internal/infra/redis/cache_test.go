package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(client, zap.NewNop(), "catalog", 6*time.Hour, 24*time.Hour).
		WithClock(func() time.Time { return now })

	return store, &now
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	payload := []byte(`{"movies":[{"title":"First"}]}`)
	require.NoError(t, store.Set(ctx, "key-1", payload, domain.TTLShort))

	got, expired, ok, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, expired)
	assert.JSONEq(t, string(payload), string(got), "payload must round-trip unchanged")
}

func TestStore_Miss(t *testing.T) {
	store, _ := setupTestStore(t)

	_, expired, ok, err := store.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, expired)
}

func TestStore_ShortTTLExpiry(t *testing.T) {
	store, now := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key-1", []byte(`"v"`), domain.TTLShort))

	// Just under the short TTL: still fresh.
	*now = now.Add(6*time.Hour - time.Minute)
	_, expired, ok, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, expired)

	// At the short TTL: stale, but the payload stays readable.
	*now = now.Add(time.Minute)
	payload, expired, ok, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok, "expired entries are never purged, only reported stale")
	assert.True(t, expired)
	assert.Equal(t, `"v"`, string(payload))
}

func TestStore_LongTTLOutlivesShort(t *testing.T) {
	store, now := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "details", []byte(`"d"`), domain.TTLLong))

	*now = now.Add(12 * time.Hour)
	_, expired, ok, err := store.Get(ctx, "details")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, expired, "long-class entries outlive the short TTL")

	*now = now.Add(13 * time.Hour)
	_, expired, ok, err = store.Get(ctx, "details")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, expired)
}

func TestStore_OverwriteResetsClock(t *testing.T) {
	store, now := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key-1", []byte(`"old"`), domain.TTLShort))

	*now = now.Add(7 * time.Hour)
	require.NoError(t, store.Set(ctx, "key-1", []byte(`"new"`), domain.TTLShort))

	payload, expired, ok, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, expired)
	assert.Equal(t, `"new"`, string(payload))
}

func TestStore_UndecodableEntryIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, zap.NewNop(), "catalog", time.Hour, time.Hour)
	require.NoError(t, client.Set(context.Background(), "catalog:bad", "not-an-entry", 0).Err())

	_, _, ok, err := store.Get(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("/movies/trending", map[string]string{"country": "us", "order_by": "rating"})
	b := Fingerprint("/movies/trending", map[string]string{"order_by": "rating", "country": "us"})

	assert.Equal(t, a, b, "parameter order must not change the fingerprint")
	assert.Len(t, a, 40) // sha1 hex
}

func TestFingerprint_Distinguishes(t *testing.T) {
	base := Fingerprint("/movies/trending", map[string]string{"country": "us"})

	assert.NotEqual(t, base, Fingerprint("/movies/trending", map[string]string{"country": "uk"}))
	assert.NotEqual(t, base, Fingerprint("/movies/top", map[string]string{"country": "us"}))
	assert.NotEqual(t, base, Fingerprint("/movies/trending", nil))
}
