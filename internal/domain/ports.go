package domain

import (
	"context"
)

// Page is one page of a paginated provider listing. NextCursor is set by
// cursor-paginated providers; page-number providers leave it empty and
// signal continuation through HasMore alone.
type Page[T any] struct {
	Items      []T
	HasMore    bool
	NextCursor string
}

// TTLClass selects the expiry policy recorded with a cache entry.
type TTLClass string

const (
	// TTLShort is for frequently-changing listings: trending/hero, genre
	// pages, title search.
	TTLShort TTLClass = "short"

	// TTLLong is for stable metadata: item details, fixed content rows,
	// episodes, people.
	TTLLong TTLClass = "long"
)

// CacheStore is the durable key-value cache shared by all read operations.
// Implementations: internal/infra/redis/cache.go
//
// Entries are immutable snapshots and are never purged proactively; Get
// reports staleness at read time and keeps expired payloads readable so the
// aggregation layer can fall back to them on total provider failure. Two
// concurrent writers on the same key are acceptable; last write wins.
type CacheStore interface {
	// Get retrieves an entry. ok is false on a miss; expired is true when
	// the entry has outlived its recorded TTL class.
	Get(ctx context.Context, key string) (payload []byte, expired bool, ok bool, err error)

	// Set stores a payload under the given TTL class, overwriting any
	// previous entry.
	Set(ctx context.Context, key string, payload []byte, class TTLClass) error
}

// CatalogProvider is the listing-level upstream: trending and ranked movie
// feeds with cursor pagination, title search, and per-region streaming
// availability.
// Implementations: internal/infra/provider/streamavail/
type CatalogProvider interface {
	// Name returns the provider identifier used in logs and error classes.
	Name() string

	// TrendingPage fetches one page of the weekly-popularity listing.
	TrendingPage(ctx context.Context, cursor string) (Page[Movie], error)

	// TopRatedPage fetches one page of the rating-ordered listing.
	TopRatedPage(ctx context.Context, cursor string) (Page[Movie], error)

	// NewReleasesPage fetches one page of the release-date-ordered listing.
	NewReleasesPage(ctx context.Context, cursor string) (Page[Movie], error)

	// SearchByTitle searches movies by free-text title.
	SearchByTitle(ctx context.Context, title string) ([]Movie, error)

	// StreamingByImdbID resolves region -> streaming options for a title.
	StreamingByImdbID(ctx context.Context, imdbID string) (map[string][]StreamingOption, error)
}

// DetailProvider is the per-item upstream: genre listings, movie and series
// detail, episodes and people.
// Implementations: internal/infra/provider/simkl/
type DetailProvider interface {
	// Name returns the provider identifier used in logs and error classes.
	Name() string

	// GenrePage fetches one page of a genre listing for the given kind.
	GenrePage(ctx context.Context, kind ContentType, slug string, page int) (Page[Movie], error)

	// MovieByID fetches full movie detail. Cast is not populated here; it
	// comes from the separate CastByID endpoint.
	MovieByID(ctx context.Context, id string) (*MovieDetails, error)

	// CastByID fetches the ordered cast name list for a movie.
	CastByID(ctx context.Context, id string) ([]string, error)

	// SeriesByID fetches series/anime detail without episodes.
	SeriesByID(ctx context.Context, kind ContentType, id string) (*SeriesDetail, error)

	// EpisodesByID fetches the flat episode list for a series or anime.
	EpisodesByID(ctx context.Context, kind ContentType, id string) ([]Episode, error)

	// EpisodeByID fetches a single episode.
	EpisodeByID(ctx context.Context, id string) (*Episode, error)

	// PersonByID fetches a single person.
	PersonByID(ctx context.Context, id string) (*Actor, error)
}
