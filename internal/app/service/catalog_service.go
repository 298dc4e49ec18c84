package service

import (
	"context"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
	"media-catalog-service/internal/infra/provider"
	"media-catalog-service/internal/infra/redis"
)

const (
	heroMaxPages  = 3
	genreMaxPages = 2
	genrePageCap  = 24

	// Upper bound on concurrent per-movie detail lookups during genre
	// page enrichment.
	enrichWorkers = 8
)

// ContentRows is the composite home screen payload. Each row degrades to an
// empty slice independently when its upstream fetch fails.
type ContentRows struct {
	TopRated    []domain.Movie `json:"top_rated"`
	NewReleases []domain.Movie `json:"new_releases"`
}

// CatalogService serves the browse surface: hero carousel, fixed content
// rows, genre pages and title search. Results are cached and every
// operation degrades to stale or empty output instead of erroring.
type CatalogService struct {
	catalog domain.CatalogProvider
	details domain.DetailProvider
	cache   domain.CacheStore
	logger  *zap.Logger
	timeout time.Duration
}

func NewCatalogService(
	catalog domain.CatalogProvider,
	details domain.DetailProvider,
	cache domain.CacheStore,
	logger *zap.Logger,
	timeout time.Duration,
) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		details: details,
		cache:   cache,
		logger:  logger,
		timeout: timeout,
	}
}

// HeroMovies returns the trending titles backing the hero carousel,
// collected across up to three upstream pages.
func (s *CatalogService) HeroMovies(ctx context.Context) []domain.Movie {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := redis.Fingerprint("/catalog/hero", nil)

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLShort,
		func(ctx context.Context) ([]domain.Movie, int, error) {
			movies, err := provider.Walk(ctx,
				func(ctx context.Context, cursor string, _ int) (domain.Page[domain.Movie], error) {
					return s.catalog.TrendingPage(ctx, cursor)
				}, heroMaxPages)
			if err != nil {
				return nil, 0, err
			}

			return movies, len(movies), nil
		})
}

// ContentRows returns the fixed home screen rows. The two upstream fetches
// run concurrently; a row whose fetch fails entirely comes back empty while
// the other is still served.
func (s *CatalogService) ContentRows(ctx context.Context) ContentRows {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := redis.Fingerprint("/catalog/rows", nil)

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLLong,
		func(ctx context.Context) (ContentRows, int, error) {
			var (
				rows   ContentRows
				topErr error
				newErr error
				wg     sync.WaitGroup
			)

			wg.Add(2)

			go func() {
				defer wg.Done()

				page, err := s.catalog.TopRatedPage(ctx, "")
				if err != nil {
					topErr = err

					return
				}
				rows.TopRated = page.Items
			}()

			go func() {
				defer wg.Done()

				page, err := s.catalog.NewReleasesPage(ctx, "")
				if err != nil {
					newErr = err

					return
				}
				rows.NewReleases = page.Items
			}()

			wg.Wait()

			if topErr != nil {
				s.logger.Warn("top rated row failed", zap.Error(topErr))
				rows.TopRated = []domain.Movie{}
			}
			if newErr != nil {
				s.logger.Warn("new releases row failed", zap.Error(newErr))
				rows.NewReleases = []domain.Movie{}
			}

			if topErr != nil && newErr != nil {
				return ContentRows{}, 0, topErr
			}

			// A composite with a failed row is served but not written
			// through; otherwise the empty row would be pinned for the
			// full long TTL after a transient failure.
			if topErr != nil || newErr != nil {
				return rows, 0, nil
			}

			return rows, len(rows.TopRated) + len(rows.NewReleases), nil
		})
}

// MoviesByGenre returns one page of a genre listing, enriched with
// per-title detail lookups. Enrichment failures keep the base item.
func (s *CatalogService) MoviesByGenre(ctx context.Context, genre string, page int) []domain.Movie {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if page < 1 {
		page = 1
	}

	key := redis.Fingerprint("/catalog/genre", map[string]string{
		"genre": genre,
		"page":  strconv.Itoa(page),
	})

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLShort,
		func(ctx context.Context) ([]domain.Movie, int, error) {
			start := page

			movies, err := provider.Walk(ctx,
				func(ctx context.Context, _ string, idx int) (domain.Page[domain.Movie], error) {
					return s.details.GenrePage(ctx, domain.ContentTypeMovie, genre, start+idx-1)
				}, genreMaxPages)
			if err != nil {
				return nil, 0, err
			}

			if len(movies) > genrePageCap {
				movies = movies[:genrePageCap]
			}

			s.enrichMovies(ctx, movies)

			return movies, len(movies), nil
		})
}

// enrichMovies fills missing rating, runtime, overview and genre data from
// the detail provider. Lookups run with bounded concurrency and a failed
// lookup leaves the listing item as is.
func (s *CatalogService) enrichMovies(ctx context.Context, movies []domain.Movie) {
	var wg sync.WaitGroup

	sem := make(chan struct{}, enrichWorkers)

	for i := range movies {
		wg.Add(1)

		go func(m *domain.Movie) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			details, err := s.details.MovieByID(ctx, m.ID)
			if err != nil || details == nil {
				s.logger.Debug("genre enrichment skipped",
					zap.String("id", m.ID),
					zap.Error(err),
				)

				return
			}

			if m.Rating == 0 {
				m.Rating = details.Rating
			}
			if m.Runtime == 0 {
				m.Runtime = details.Runtime
			}
			if m.Overview == "" {
				m.Overview = details.Overview
			}
			if len(m.Genres) == 0 {
				m.Genres = details.Genres
			}
		}(&movies[i])
	}

	wg.Wait()
}

// SearchMovies runs a title search. Queries shorter than three characters
// return an empty result without a provider call. Length is counted in
// runes so multi-byte queries are not waved through.
func (s *CatalogService) SearchMovies(ctx context.Context, query string) []domain.Movie {
	if utf8.RuneCountInString(query) < 3 {
		return []domain.Movie{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := redis.Fingerprint("/catalog/search", map[string]string{"q": query})

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLShort,
		func(ctx context.Context) ([]domain.Movie, int, error) {
			movies, err := s.catalog.SearchByTitle(ctx, query)
			if err != nil {
				return nil, 0, err
			}

			return movies, len(movies), nil
		})
}
