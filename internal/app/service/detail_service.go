package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
	"media-catalog-service/internal/infra/redis"
)

// DetailService serves the detail surfaces: full movie pages, series and
// anime detail with grouped episodes, single episodes and people. Primary
// lookups are authoritative; the cast, episode and streaming sub-fetches
// degrade independently.
type DetailService struct {
	details   domain.DetailProvider
	streaming domain.CatalogProvider
	cache     domain.CacheStore
	logger    *zap.Logger
	timeout   time.Duration
}

func NewDetailService(
	details domain.DetailProvider,
	streaming domain.CatalogProvider,
	cache domain.CacheStore,
	logger *zap.Logger,
	timeout time.Duration,
) *DetailService {
	return &DetailService{
		details:   details,
		streaming: streaming,
		cache:     cache,
		logger:    logger,
		timeout:   timeout,
	}
}

// MovieDetails returns the full detail page for a movie, nil when the title
// does not exist upstream. Cast and streaming availability are fetched
// alongside the primary record and come back empty on failure.
func (s *DetailService) MovieDetails(ctx context.Context, id string) *domain.MovieDetails {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := redis.Fingerprint("/details/movie", map[string]string{"id": id})

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLLong,
		func(ctx context.Context) (*domain.MovieDetails, int, error) {
			var (
				details *domain.MovieDetails
				cast    []string
				mainErr error
				castErr error
				wg      sync.WaitGroup
			)

			wg.Add(2)

			go func() {
				defer wg.Done()
				details, mainErr = s.details.MovieByID(ctx, id)
			}()

			go func() {
				defer wg.Done()
				cast, castErr = s.details.CastByID(ctx, id)
			}()

			wg.Wait()

			if mainErr != nil {
				return nil, 0, mainErr
			}
			if details == nil {
				return nil, 0, nil
			}

			if castErr != nil {
				s.logger.Warn("cast lookup failed",
					zap.String("id", id),
					zap.Error(castErr),
				)
				cast = []string{}
			}
			details.Cast = cast

			details.Streaming = s.streamingOptions(ctx, details.ImdbID)

			return details, 1, nil
		})
}

// streamingOptions resolves where a title can be watched, keyed by the
// upstream service name. Titles without an IMDb id and failed lookups both
// resolve to an empty map.
func (s *DetailService) streamingOptions(ctx context.Context, imdbID string) map[string][]domain.StreamingOption {
	if imdbID == "" {
		return map[string][]domain.StreamingOption{}
	}

	options, err := s.streaming.StreamingByImdbID(ctx, imdbID)
	if err != nil {
		s.logger.Warn("streaming availability lookup failed",
			zap.String("imdb_id", imdbID),
			zap.Error(err),
		)

		return map[string][]domain.StreamingOption{}
	}

	return options
}

// Details returns the detail page for any content type. Series and anime
// additionally carry their episodes grouped by season; an episode fetch
// failure yields the detail with empty seasons.
func (s *DetailService) Details(ctx context.Context, id string, kind domain.ContentType) *domain.SeriesDetail {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := redis.Fingerprint("/details/"+string(kind), map[string]string{"id": id})

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLLong,
		func(ctx context.Context) (*domain.SeriesDetail, int, error) {
			if kind == domain.ContentTypeMovie {
				detail, err := s.details.SeriesByID(ctx, kind, id)
				if err != nil {
					return nil, 0, err
				}
				if detail == nil {
					return nil, 0, nil
				}
				detail.Seasons = map[int][]domain.Episode{}

				return detail, 1, nil
			}

			var (
				detail   *domain.SeriesDetail
				episodes []domain.Episode
				mainErr  error
				epErr    error
				wg       sync.WaitGroup
			)

			wg.Add(2)

			go func() {
				defer wg.Done()
				detail, mainErr = s.details.SeriesByID(ctx, kind, id)
			}()

			go func() {
				defer wg.Done()
				episodes, epErr = s.details.EpisodesByID(ctx, kind, id)
			}()

			wg.Wait()

			if mainErr != nil {
				return nil, 0, mainErr
			}
			if detail == nil {
				return nil, 0, nil
			}

			if epErr != nil {
				s.logger.Warn("episode listing failed",
					zap.String("id", id),
					zap.String("type", string(kind)),
					zap.Error(epErr),
				)
				episodes = nil
			}
			detail.Seasons = domain.GroupEpisodes(episodes)

			return detail, 1, nil
		})
}

// EpisodeByID returns a single episode, nil when unknown.
func (s *DetailService) EpisodeByID(ctx context.Context, id string) *domain.Episode {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := redis.Fingerprint("/details/episode", map[string]string{"id": id})

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLLong,
		func(ctx context.Context) (*domain.Episode, int, error) {
			episode, err := s.details.EpisodeByID(ctx, id)
			if err != nil {
				return nil, 0, err
			}
			if episode == nil {
				return nil, 0, nil
			}

			return episode, 1, nil
		})
}

// ActorByID returns a person record, nil when unknown.
func (s *DetailService) ActorByID(ctx context.Context, id string) *domain.Actor {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := redis.Fingerprint("/details/person", map[string]string{"id": id})

	return readThrough(ctx, s.cache, s.logger, key, domain.TTLLong,
		func(ctx context.Context) (*domain.Actor, int, error) {
			actor, err := s.details.PersonByID(ctx, id)
			if err != nil {
				return nil, 0, err
			}
			if actor == nil {
				return nil, 0, nil
			}

			return actor, 1, nil
		})
}
