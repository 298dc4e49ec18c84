// Package redis implements the durable cache store on Redis.
//
// Entries are stored WITHOUT native Redis expiry: staleness is computed
// lazily at read time from the recorded write timestamp and TTL class, so
// an expired payload stays readable and the aggregation layer can fall
// back to it when a provider fails outright.
package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
)

// Entry is the persisted envelope around a cached payload.
type Entry struct {
	WrittenAtMillis int64           `json:"written_at_ms"`
	TTLClass        domain.TTLClass `json:"ttl_class"`
	Payload         json.RawMessage `json:"payload"`
}

// Store implements domain.CacheStore on a Redis client with key-prefix
// namespacing. Two concurrent writers on the same key are tolerated; the
// last write wins, which is acceptable because payloads are idempotent
// snapshots of upstream truth.
type Store struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	shortTTL  time.Duration
	longTTL   time.Duration
	now       func() time.Time
}

// NewStore creates a cache store. keyPrefix namespaces all keys to avoid
// collisions with other applications on the same Redis.
func NewStore(client *redis.Client, logger *zap.Logger, keyPrefix string, shortTTL, longTTL time.Duration) *Store {
	return &Store{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
		shortTTL:  shortTTL,
		longTTL:   longTTL,
		now:       time.Now,
	}
}

// WithClock overrides the store's clock. Tests use this to simulate the
// passage of time past a TTL.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get retrieves an entry. ok is false on a miss or an undecodable entry;
// expired reports whether the entry has outlived its TTL class.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, bool, error) {
	fullKey := s.buildKey(key)

	data, err := s.client.Get(ctx, fullKey).Bytes()
	if err == redis.Nil {
		return nil, false, false, nil
	}
	if err != nil {
		s.logger.Error("cache get failed",
			zap.String("key", key),
			zap.Error(err),
		)

		return nil, false, false, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// An undecodable entry is treated as a miss; the next write
		// replaces it.
		s.logger.Warn("cache entry undecodable, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)

		return nil, false, false, nil
	}

	age := s.now().Sub(time.UnixMilli(entry.WrittenAtMillis))
	expired := age >= s.ttlFor(entry.TTLClass)

	s.logger.Debug("cache hit",
		zap.String("key", key),
		zap.Bool("expired", expired),
		zap.Duration("age", age),
		zap.Int("bytes", len(entry.Payload)),
	)

	return entry.Payload, expired, true, nil
}

// Set stores a payload under the given TTL class, overwriting any previous
// entry for the key.
func (s *Store) Set(ctx context.Context, key string, payload []byte, class domain.TTLClass) error {
	entry := Entry{
		WrittenAtMillis: s.now().UnixMilli(),
		TTLClass:        class,
		Payload:         payload,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	fullKey := s.buildKey(key)
	if err := s.client.Set(ctx, fullKey, data, 0).Err(); err != nil {
		s.logger.Error("cache set failed",
			zap.String("key", key),
			zap.Int("bytes", len(payload)),
			zap.String("ttl_class", string(class)),
			zap.Error(err),
		)

		return err
	}

	s.logger.Debug("cache set",
		zap.String("key", key),
		zap.Int("bytes", len(payload)),
		zap.String("ttl_class", string(class)),
	)

	return nil
}

// Ping verifies the Redis connection, for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) ttlFor(class domain.TTLClass) time.Duration {
	if class == domain.TTLLong {
		return s.longTTL
	}
	return s.shortTTL
}

// buildKey creates a fully-qualified key under the configured prefix.
func (s *Store) buildKey(key string) string {
	return s.keyPrefix + ":" + key
}

// Fingerprint derives the deterministic cache key for a logical operation:
// a sha1 over the endpoint identifier and its sorted query parameters. The
// same operation with the same parameters always addresses the same entry.
func Fingerprint(endpoint string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(endpoint)
	for _, k := range keys {
		sb.WriteByte('?')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}

	sum := sha1.Sum([]byte(sb.String()))

	return hex.EncodeToString(sum[:])
}
