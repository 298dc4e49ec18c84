// Package service provides the aggregation use cases: cached, fail-soft
// read operations over the upstream catalog and detail providers.
package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
)

// fetchFunc produces a fresh value for a cache miss. count is the number of
// items the fetch yielded; a successful fetch with zero items is returned
// to the caller but not written through.
type fetchFunc[T any] func(ctx context.Context) (value T, count int, err error)

// readThrough runs the read protocol shared by every public operation:
//
//  1. a fresh cache hit returns the cached payload, no network,
//  2. a miss or expired entry invokes fetch,
//  3. a successful fetch with at least one item is written through under
//     the operation's TTL class before returning,
//  4. a NotFound outcome returns the zero value without touching the
//     stale entry (a definitive "does not exist" answer),
//  5. any other failure falls back to the previous entry even though it is
//     expired; with no previous entry the zero value is returned.
//
// Errors never propagate to the caller.
func readThrough[T any](
	ctx context.Context,
	cache domain.CacheStore,
	logger *zap.Logger,
	key string,
	class domain.TTLClass,
	fetch fetchFunc[T],
) T {
	var zero T

	cached, expired, ok, err := cache.Get(ctx, key)
	if err == nil && ok && !expired {
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			return value
		}
		logger.Warn("cached payload undecodable, refetching",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	value, count, fetchErr := fetch(ctx)
	if fetchErr != nil {
		if domain.IsNotFound(fetchErr) {
			logger.Debug("operation resolved to not found", zap.String("key", key))

			return zero
		}

		// Soft fallback: serve the stale snapshot over nothing.
		if ok {
			var stale T
			if err := json.Unmarshal(cached, &stale); err == nil {
				logger.Warn("provider failed, serving stale cache entry",
					zap.String("key", key),
					zap.String("class", string(domain.ClassOf(fetchErr))),
					zap.Error(fetchErr),
				)

				return stale
			}
		}

		logger.Warn("provider failed with no cache fallback",
			zap.String("key", key),
			zap.String("class", string(domain.ClassOf(fetchErr))),
			zap.Error(fetchErr),
		)

		return zero
	}

	if count > 0 {
		if payload, err := json.Marshal(value); err == nil {
			if err := cache.Set(ctx, key, payload, class); err != nil {
				// A failed write only costs a refetch later.
				logger.Warn("cache write-through failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return value
}
