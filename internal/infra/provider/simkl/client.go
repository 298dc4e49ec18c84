// Package simkl implements the simkl detail provider: genre listings,
// movie and series detail, episodes and people, authenticated with a
// client_id query parameter.
package simkl

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
	"media-catalog-service/internal/infra/provider"
)

// Name is the provider identifier used in logs and error classification.
const Name = "simkl"

// genrePageSize is the page size requested from genre listings.
const genrePageSize = 20

// Config holds the credentials this provider needs on top of the shared
// transport configuration.
type Config struct {
	Client    provider.ClientConfig
	ClientID  string
	ImageBase string
}

// Client implements domain.DetailProvider.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	images *ImageURLs
	logger *zap.Logger
}

// New creates a new simkl client.
func New(cfg Config, logger *zap.Logger) *Client {
	restyClient := provider.NewRestyClient(cfg.Client).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("client_id", cfg.ClientID)

	imageBase := cfg.ImageBase
	if imageBase == "" {
		imageBase = "https://simkl.in"
	}

	return &Client{
		name:   Name,
		client: restyClient,
		cb:     provider.NewCircuitBreaker[*resty.Response](Name, cfg.Client.CB),
		images: NewImageURLs(imageBase),
		logger: logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// kindRoute maps a content type onto this provider's path root.
func kindRoute(kind domain.ContentType) string {
	switch kind {
	case domain.ContentTypeShow:
		return "/tv"
	case domain.ContentTypeAnime:
		return "/anime"
	default:
		return "/movies"
	}
}

// GenrePage fetches one page of a genre listing for the given kind.
func (c *Client) GenrePage(ctx context.Context, kind domain.ContentType, slug string, page int) (domain.Page[domain.Movie], error) {
	if page < 1 {
		page = 1
	}

	path := fmt.Sprintf("%s/genres/%s/all-types/all-countries/all-years/popular-today", kindRoute(kind), slug)
	body, err := c.get(ctx, path, map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(genrePageSize),
	})
	if err != nil {
		return domain.Page[domain.Movie]{}, err
	}

	var items []ListItem
	if err := json.Unmarshal(body, &items); err != nil {
		return domain.Page[domain.Movie]{}, provider.Malformed(c.name, fmt.Errorf("parsing genre listing: %w", err))
	}

	movies := c.normalizeListing(items)

	c.logger.Debug("simkl genre page fetched",
		zap.String("genre", slug),
		zap.Int("page", page),
		zap.Int("count", len(movies)),
	)

	// The listing has no explicit continuation flag; a full page means
	// more data is likely available.
	return domain.Page[domain.Movie]{
		Items:   movies,
		HasMore: len(items) == genrePageSize,
	}, nil
}

// MovieByID fetches full movie detail. Cast comes separately from CastByID.
func (c *Client) MovieByID(ctx context.Context, id string) (*domain.MovieDetails, error) {
	body, err := c.get(ctx, "/movies/"+id, map[string]string{"extended": "full"})
	if err != nil {
		return nil, err
	}
	if emptyJSON(body) {
		return nil, provider.EmptyBody(c.name)
	}

	var item MovieItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, provider.Malformed(c.name, fmt.Errorf("parsing movie detail: %w", err))
	}

	return item.ToMovieDetails(c.images)
}

// CastByID fetches the ordered cast name list for a movie, capped at the
// canonical maximum.
func (c *Client) CastByID(ctx context.Context, id string) ([]string, error) {
	body, err := c.get(ctx, "/movies/credits/"+id, nil)
	if err != nil {
		return nil, err
	}

	var credits CreditsResponse
	if err := json.Unmarshal(body, &credits); err != nil {
		return nil, provider.Malformed(c.name, fmt.Errorf("parsing credits: %w", err))
	}

	names := make([]string, 0, domain.MaxCastSize)
	for _, member := range credits.Cast {
		if member.Name == "" {
			continue
		}
		names = append(names, member.Name)
		if len(names) == domain.MaxCastSize {
			break
		}
	}

	return names, nil
}

// SeriesByID fetches series/anime detail without episodes.
func (c *Client) SeriesByID(ctx context.Context, kind domain.ContentType, id string) (*domain.SeriesDetail, error) {
	body, err := c.get(ctx, kindRoute(kind)+"/"+id, map[string]string{"extended": "full"})
	if err != nil {
		return nil, err
	}
	if emptyJSON(body) {
		return nil, provider.EmptyBody(c.name)
	}

	var item ShowItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, provider.Malformed(c.name, fmt.Errorf("parsing series detail: %w", err))
	}

	return item.ToSeriesDetail(c.images)
}

// EpisodesByID fetches the flat episode list for a series or anime. The
// provider returns either a bare array or an {episodes: [...]} envelope;
// both are accepted.
func (c *Client) EpisodesByID(ctx context.Context, kind domain.ContentType, id string) ([]domain.Episode, error) {
	body, err := c.get(ctx, kindRoute(kind)+"/episodes/"+id, map[string]string{"extended": "full"})
	if err != nil {
		return nil, err
	}

	var items []EpisodeItem
	if err := json.Unmarshal(body, &items); err != nil {
		var envelope EpisodesEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, provider.Malformed(c.name, fmt.Errorf("parsing episode listing: %w", err))
		}
		items = envelope.Episodes
	}

	episodes := make([]domain.Episode, 0, len(items))
	for i := range items {
		episodes = append(episodes, items[i].ToEpisode(c.images))
	}

	return episodes, nil
}

// EpisodeByID fetches a single episode.
func (c *Client) EpisodeByID(ctx context.Context, id string) (*domain.Episode, error) {
	body, err := c.get(ctx, "/episodes/"+id, map[string]string{"extended": "full"})
	if err != nil {
		return nil, err
	}
	if emptyJSON(body) {
		return nil, provider.EmptyBody(c.name)
	}

	var item EpisodeItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, provider.Malformed(c.name, fmt.Errorf("parsing episode: %w", err))
	}

	episode := item.ToEpisode(c.images)

	return &episode, nil
}

// PersonByID fetches a single person.
func (c *Client) PersonByID(ctx context.Context, id string) (*domain.Actor, error) {
	body, err := c.get(ctx, "/people/"+id, map[string]string{"extended": "full"})
	if err != nil {
		return nil, err
	}
	if emptyJSON(body) {
		return nil, provider.EmptyBody(c.name)
	}

	var item PersonItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, provider.Malformed(c.name, fmt.Errorf("parsing person: %w", err))
	}

	return item.ToActor(c.images)
}

// normalizeListing maps a raw listing batch into domain movies, dropping
// the items that fail mandatory-field validation and keeping order.
func (c *Client) normalizeListing(items []ListItem) []domain.Movie {
	movies := make([]domain.Movie, 0, len(items))
	dropped := 0
	for i := range items {
		movie, err := items[i].ToMovie(c.images)
		if err != nil {
			dropped++
			c.logger.Debug("simkl item rejected", zap.Error(err))
			continue
		}
		movies = append(movies, movie)
	}

	if dropped > 0 {
		c.logger.Warn("simkl batch had invalid items",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(movies)),
		)
	}

	return movies
}

// get performs one GET through the circuit breaker and returns the raw body
// of a classified-success response.
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		req := c.client.R().SetContext(ctx)
		if params != nil {
			req.SetQueryParams(params)
		}

		r, rerr := req.Get(path)
		if cerr := provider.Classify(c.name, r, rerr); cerr != nil {
			return r, cerr
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("simkl request failed",
			zap.String("path", path),
			zap.String("class", string(domain.ClassOf(err))),
			zap.String("breaker", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, provider.Classify(c.name, nil, err)
	}

	return resp.Body(), nil
}

// emptyJSON reports whether the body carries no item: empty, "null" or "{}".
func emptyJSON(body []byte) bool {
	switch string(body) {
	case "", "null", "{}", "[]":
		return true
	}
	return false
}
