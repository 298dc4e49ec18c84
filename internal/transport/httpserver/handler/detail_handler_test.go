package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
	"media-catalog-service/internal/transport/httpserver/dto"
	"media-catalog-service/internal/validator"
)

type fakeDetailReader struct {
	movie   func(id string) *domain.MovieDetails
	details func(id string, kind domain.ContentType) *domain.SeriesDetail
	episode func(id string) *domain.Episode
	actor   func(id string) *domain.Actor
}

func (f *fakeDetailReader) MovieDetails(_ context.Context, id string) *domain.MovieDetails {
	if f.movie == nil {
		return nil
	}
	return f.movie(id)
}

func (f *fakeDetailReader) Details(_ context.Context, id string, kind domain.ContentType) *domain.SeriesDetail {
	if f.details == nil {
		return nil
	}
	return f.details(id, kind)
}

func (f *fakeDetailReader) EpisodeByID(_ context.Context, id string) *domain.Episode {
	if f.episode == nil {
		return nil
	}
	return f.episode(id)
}

func (f *fakeDetailReader) ActorByID(_ context.Context, id string) *domain.Actor {
	if f.actor == nil {
		return nil
	}
	return f.actor(id)
}

func setupDetailApp(svc DetailReader) *fiber.App {
	app := fiber.New()
	h := NewDetailHandler(svc, validator.New(), zap.NewNop())

	app.Get("/api/v1/movies/:id", h.MovieByID)
	app.Get("/api/v1/details/:id", h.Details)
	app.Get("/api/v1/episodes/:id", h.Episode)
	app.Get("/api/v1/actors/:id", h.Actor)

	return app
}

func TestDetailHandler_MovieByID(t *testing.T) {
	app := setupDetailApp(&fakeDetailReader{
		movie: func(id string) *domain.MovieDetails {
			return &domain.MovieDetails{
				Movie:            domain.Movie{ID: id, Title: "Dune"},
				Cast:             []string{"Timothee Chalamet"},
				RuntimeFormatted: "2h 35m",
				Budget:           "$165M",
				Revenue:          "$712M",
			}
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/movies/tt1160419", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.MovieDetailsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Dune", body.Title)
	assert.Equal(t, "2h 35m", body.RuntimeFormatted)
	assert.Equal(t, []string{"Timothee Chalamet"}, body.Cast)
}

func TestDetailHandler_MovieByID_NotFound(t *testing.T) {
	app := setupDetailApp(&fakeDetailReader{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/movies/tt0", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDetailHandler_Details_RequiresValidType(t *testing.T) {
	app := setupDetailApp(&fakeDetailReader{
		details: func(_ string, kind domain.ContentType) *domain.SeriesDetail {
			return &domain.SeriesDetail{ID: 1, Title: "Severance"}
		},
	})

	// Missing type
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/details/123", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Unknown type
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/details/123?type=podcast", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Valid types pass through
	for _, kind := range []string{"movie", "show", "anime"} {
		resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/details/123?type="+kind, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, kind)
	}
}

func TestDetailHandler_Details_ForwardsKind(t *testing.T) {
	var gotKind domain.ContentType

	app := setupDetailApp(&fakeDetailReader{
		details: func(id string, kind domain.ContentType) *domain.SeriesDetail {
			gotKind = kind
			return &domain.SeriesDetail{
				ID:    456,
				Title: "Frieren",
				Seasons: map[int][]domain.Episode{
					1: {{ID: 1, Title: "The Journey's End", Season: 1, Number: 1}},
				},
			}
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/details/456?type=anime", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.ContentTypeAnime, gotKind)

	var body dto.SeriesDetailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Seasons[1], 1)
}

func TestDetailHandler_Episode(t *testing.T) {
	app := setupDetailApp(&fakeDetailReader{
		episode: func(id string) *domain.Episode {
			return &domain.Episode{ID: 42, Title: "Pilot", Season: 1, Number: 1}
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/episodes/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.EpisodeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Pilot", body.Title)
}

func TestDetailHandler_Actor_NotFound(t *testing.T) {
	app := setupDetailApp(&fakeDetailReader{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/actors/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
