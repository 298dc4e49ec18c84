package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
)

func movieDetailsFixture(id string) *domain.MovieDetails {
	return &domain.MovieDetails{
		Movie: domain.Movie{
			ID:     id,
			ImdbID: id,
			Title:  "Title " + id,
		},
		Director:         "Denis Villeneuve",
		Directors:        []string{"Denis Villeneuve"},
		RuntimeFormatted: "2h 35m",
		Budget:           "$165M",
		Revenue:          "$712M",
	}
}

func TestDetailService_MovieDetails_ComposesCastAndStreaming(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		movie: func(_ context.Context, id string) (*domain.MovieDetails, error) {
			return movieDetailsFixture(id), nil
		},
		cast: func(context.Context, string) ([]string, error) {
			return []string{"Timothee Chalamet", "Zendaya"}, nil
		},
	}
	catalog := &fakeCatalog{
		streaming: func(_ context.Context, imdbID string) (map[string][]domain.StreamingOption, error) {
			assert.Equal(t, "tt1160419", imdbID)
			return map[string][]domain.StreamingOption{
				"us": {{Service: "Netflix", Link: "https://netflix.example/tt1160419"}},
			}, nil
		},
	}

	svc := NewDetailService(details, catalog, cache, zap.NewNop(), time.Second)

	got := svc.MovieDetails(context.Background(), "tt1160419")
	require.NotNil(t, got)
	assert.Equal(t, []string{"Timothee Chalamet", "Zendaya"}, got.Cast)
	require.Contains(t, got.Streaming, "us")
	assert.Equal(t, "Netflix", got.Streaming["us"][0].Service)
}

func TestDetailService_MovieDetails_CastFailureDegrades(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		movie: func(_ context.Context, id string) (*domain.MovieDetails, error) {
			return movieDetailsFixture(id), nil
		},
		cast: func(context.Context, string) ([]string, error) {
			return nil, domain.NewProviderError(
				"fake-detail", domain.ClassServerError, 500, errors.New("boom"))
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	got := svc.MovieDetails(context.Background(), "tt1")
	require.NotNil(t, got, "a failed cast sub-fetch must not sink the detail")
	assert.Equal(t, []string{}, got.Cast)
}

func TestDetailService_MovieDetails_StreamingFailureDegrades(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		movie: func(_ context.Context, id string) (*domain.MovieDetails, error) {
			return movieDetailsFixture(id), nil
		},
	}
	catalog := &fakeCatalog{
		streaming: func(context.Context, string) (map[string][]domain.StreamingOption, error) {
			return nil, domain.NewProviderError(
				"fake-catalog", domain.ClassRateLimited, 429, errors.New("quota"))
		},
	}

	svc := NewDetailService(details, catalog, cache, zap.NewNop(), time.Second)

	got := svc.MovieDetails(context.Background(), "tt1")
	require.NotNil(t, got)
	assert.NotNil(t, got.Streaming)
	assert.Empty(t, got.Streaming)
}

func TestDetailService_MovieDetails_NoImdbIDSkipsStreaming(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		movie: func(_ context.Context, id string) (*domain.MovieDetails, error) {
			d := movieDetailsFixture(id)
			d.ImdbID = ""
			return d, nil
		},
	}
	catalog := &fakeCatalog{
		streaming: func(context.Context, string) (map[string][]domain.StreamingOption, error) {
			t.Error("streaming must not be queried without an IMDb id")
			return nil, nil
		},
	}

	svc := NewDetailService(details, catalog, cache, zap.NewNop(), time.Second)

	got := svc.MovieDetails(context.Background(), "12345")
	require.NotNil(t, got)
	assert.Empty(t, got.Streaming)
}

func TestDetailService_MovieDetails_NotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		movie: func(context.Context, string) (*domain.MovieDetails, error) {
			return nil, domain.NewProviderError(
				"fake-detail", domain.ClassNotFound, 404, errors.New("no such title"))
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	assert.Nil(t, svc.MovieDetails(context.Background(), "tt0"))
}

func TestDetailService_MovieDetails_Cached(t *testing.T) {
	cache, _ := setupTestCache(t)

	var calls int32
	details := &fakeDetail{
		movie: func(_ context.Context, id string) (*domain.MovieDetails, error) {
			atomic.AddInt32(&calls, 1)
			return movieDetailsFixture(id), nil
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	first := svc.MovieDetails(context.Background(), "tt1")
	second := svc.MovieDetails(context.Background(), "tt1")
	require.NotNil(t, first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDetailService_Details_SeriesGroupsEpisodes(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		series: func(_ context.Context, kind domain.ContentType, _ string) (*domain.SeriesDetail, error) {
			assert.Equal(t, domain.ContentTypeShow, kind)
			return &domain.SeriesDetail{ID: 456, Title: "Severance"}, nil
		},
		episodes: func(context.Context, domain.ContentType, string) ([]domain.Episode, error) {
			return []domain.Episode{
				{ID: 1, Title: "Good News About Hell", Season: 1, Number: 1},
				{ID: 2, Title: "Half Loop", Season: 1, Number: 2},
				{ID: 3, Title: "Hello, Ms. Cobel", Season: 2, Number: 1},
			}, nil
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	got := svc.Details(context.Background(), "456", domain.ContentTypeShow)
	require.NotNil(t, got)
	assert.Len(t, got.Seasons[1], 2)
	assert.Len(t, got.Seasons[2], 1)
}

func TestDetailService_Details_EpisodeFailureDegrades(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		series: func(context.Context, domain.ContentType, string) (*domain.SeriesDetail, error) {
			return &domain.SeriesDetail{ID: 789, Title: "Frieren"}, nil
		},
		episodes: func(context.Context, domain.ContentType, string) ([]domain.Episode, error) {
			return nil, domain.NewProviderError(
				"fake-detail", domain.ClassServerError, 503, errors.New("down"))
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	got := svc.Details(context.Background(), "789", domain.ContentTypeAnime)
	require.NotNil(t, got, "an episode fetch failure must not sink the detail")
	assert.Empty(t, got.Seasons)
}

func TestDetailService_Details_MovieSkipsEpisodes(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		series: func(_ context.Context, kind domain.ContentType, _ string) (*domain.SeriesDetail, error) {
			assert.Equal(t, domain.ContentTypeMovie, kind)
			return &domain.SeriesDetail{ID: 123, Title: "Dune"}, nil
		},
		episodes: func(context.Context, domain.ContentType, string) ([]domain.Episode, error) {
			t.Error("movies have no episode listing to fetch")
			return nil, nil
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	got := svc.Details(context.Background(), "123", domain.ContentTypeMovie)
	require.NotNil(t, got)
	assert.NotNil(t, got.Seasons)
	assert.Empty(t, got.Seasons)
}

func TestDetailService_EpisodeByID_Cached(t *testing.T) {
	cache, _ := setupTestCache(t)

	var calls int32
	details := &fakeDetail{
		episode: func(context.Context, string) (*domain.Episode, error) {
			atomic.AddInt32(&calls, 1)
			return &domain.Episode{ID: 42, Title: "Pilot", Season: 1, Number: 1}, nil
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	first := svc.EpisodeByID(context.Background(), "42")
	second := svc.EpisodeByID(context.Background(), "42")
	require.NotNil(t, first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDetailService_ActorByID(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		person: func(context.Context, string) (*domain.Actor, error) {
			return &domain.Actor{ID: 7, Name: "Zendaya", Image: domain.PlaceholderActor}, nil
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	got := svc.ActorByID(context.Background(), "7")
	require.NotNil(t, got)
	assert.Equal(t, "Zendaya", got.Name)

	assert.Nil(t, (&DetailService{
		details: &fakeDetail{
			person: func(context.Context, string) (*domain.Actor, error) {
				return nil, domain.NewProviderError(
					"fake-detail", domain.ClassNotFound, 404, errors.New("unknown person"))
			},
		},
		streaming: &fakeCatalog{},
		cache:     cache,
		logger:    zap.NewNop(),
		timeout:   time.Second,
	}).ActorByID(context.Background(), "0"))
}

func TestDetailService_Details_NotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	details := &fakeDetail{
		series: func(context.Context, domain.ContentType, string) (*domain.SeriesDetail, error) {
			return nil, domain.NewProviderError(
				"fake-detail", domain.ClassNotFound, 404, errors.New("no such show"))
		},
	}

	svc := NewDetailService(details, &fakeCatalog{}, cache, zap.NewNop(), time.Second)

	assert.Nil(t, svc.Details(context.Background(), "0", domain.ContentTypeShow))
}
