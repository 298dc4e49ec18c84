// Package streamavail implements the streaming-availability catalog
// provider: cursor-paginated movie listings, title search and per-region
// streaming options, authenticated with RapidAPI-style headers.
package streamavail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
	"media-catalog-service/internal/infra/provider"
)

// Name is the provider identifier used in logs and error classification.
const Name = "streamavail"

// API paths.
const (
	filtersEndpoint = "/shows/search/filters"
	titleEndpoint   = "/shows/search/title"
	showEndpoint    = "/shows/{id}"
)

// Ordering values accepted by the filters endpoint.
const (
	orderPopularity  = "popularity_1week"
	orderRating      = "rating"
	orderReleaseDate = "release_date"
)

// Config holds the credentials this provider needs on top of the shared
// transport configuration.
type Config struct {
	Client  provider.ClientConfig
	APIKey  string
	APIHost string
	Country string
}

// Client implements domain.CatalogProvider.
type Client struct {
	name    string
	country string
	client  *resty.Client
	cb      *gobreaker.CircuitBreaker[*resty.Response]
	logger  *zap.Logger
}

// New creates a new streaming-availability client.
func New(cfg Config, logger *zap.Logger) *Client {
	restyClient := provider.NewRestyClient(cfg.Client).
		SetHeader("X-RapidAPI-Key", cfg.APIKey).
		SetHeader("X-RapidAPI-Host", cfg.APIHost)

	country := cfg.Country
	if country == "" {
		country = "us"
	}

	return &Client{
		name:    Name,
		country: country,
		client:  restyClient,
		cb:      provider.NewCircuitBreaker[*resty.Response](Name, cfg.Client.CB),
		logger:  logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// TrendingPage fetches one page of the weekly-popularity listing.
func (c *Client) TrendingPage(ctx context.Context, cursor string) (domain.Page[domain.Movie], error) {
	return c.filtersPage(ctx, orderPopularity, cursor)
}

// TopRatedPage fetches one page of the rating-ordered listing.
func (c *Client) TopRatedPage(ctx context.Context, cursor string) (domain.Page[domain.Movie], error) {
	return c.filtersPage(ctx, orderRating, cursor)
}

// NewReleasesPage fetches one page of the release-date-ordered listing.
func (c *Client) NewReleasesPage(ctx context.Context, cursor string) (domain.Page[domain.Movie], error) {
	return c.filtersPage(ctx, orderReleaseDate, cursor)
}

func (c *Client) filtersPage(ctx context.Context, orderBy, cursor string) (domain.Page[domain.Movie], error) {
	params := map[string]string{
		"country":            c.country,
		"series_granularity": "show",
		"show_type":          "movie",
		"output_language":    "en",
		"order_by":           orderBy,
	}
	if cursor != "" {
		params["cursor"] = cursor
	}

	body, err := c.get(ctx, filtersEndpoint, params)
	if err != nil {
		return domain.Page[domain.Movie]{}, err
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Page[domain.Movie]{}, provider.Malformed(c.name, fmt.Errorf("parsing filters response: %w", err))
	}

	page := domain.Page[domain.Movie]{
		Items:      c.normalizeShows(result.Shows),
		HasMore:    result.HasMore,
		NextCursor: result.NextCursor,
	}

	c.logger.Debug("streamavail filters page fetched",
		zap.String("order_by", orderBy),
		zap.Int("count", len(page.Items)),
		zap.Bool("has_more", page.HasMore),
	)

	return page, nil
}

// SearchByTitle searches movies by free-text title. The provider caps the
// page size at 20, so a single request is enough.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	params := map[string]string{
		"country":            c.country,
		"title":              title,
		"series_granularity": "show",
		"show_type":          "movie",
		"output_language":    "en",
		"limit":              "20",
	}

	body, err := c.get(ctx, titleEndpoint, params)
	if err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, provider.Malformed(c.name, fmt.Errorf("parsing title search response: %w", err))
	}

	return c.normalizeShows(result.Shows), nil
}

// StreamingByImdbID resolves region -> streaming options for a title.
func (c *Client) StreamingByImdbID(ctx context.Context, imdbID string) (map[string][]domain.StreamingOption, error) {
	body, err := c.getPath(ctx, showEndpoint, map[string]string{"id": imdbID},
		map[string]string{"country": c.country, "series_granularity": "show", "output_language": "en"})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, provider.EmptyBody(c.name)
	}

	var show Show
	if err := json.Unmarshal(body, &show); err != nil {
		return nil, provider.Malformed(c.name, fmt.Errorf("parsing show response: %w", err))
	}

	return show.ToStreaming(), nil
}

// normalizeShows maps a raw batch into domain movies, dropping the items
// that fail mandatory-field validation and keeping the rest in order.
func (c *Client) normalizeShows(shows []Show) []domain.Movie {
	movies := make([]domain.Movie, 0, len(shows))
	dropped := 0
	for i := range shows {
		movie, err := shows[i].ToMovie()
		if err != nil {
			dropped++
			c.logger.Debug("streamavail item rejected",
				zap.String("raw_id", shows[i].ID),
				zap.Error(err),
			)
			continue
		}
		movies = append(movies, movie)
	}

	if dropped > 0 {
		c.logger.Warn("streamavail batch had invalid items",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(movies)),
		)
	}

	return movies
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	return c.getPath(ctx, path, nil, params)
}

// getPath performs one GET through the circuit breaker and returns the raw
// body of a classified-success response.
func (c *Client) getPath(ctx context.Context, path string, pathParams, params map[string]string) ([]byte, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		req := c.client.R().
			SetContext(ctx).
			SetQueryParams(params)
		if pathParams != nil {
			req.SetPathParams(pathParams)
		}

		r, rerr := req.Get(path)
		if cerr := provider.Classify(c.name, r, rerr); cerr != nil {
			return r, cerr
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("streamavail request failed",
			zap.String("path", path),
			zap.String("class", string(domain.ClassOf(err))),
			zap.String("breaker", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, provider.Classify(c.name, nil, err)
	}

	return resp.Body(), nil
}
