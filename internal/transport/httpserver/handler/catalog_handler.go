// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"media-catalog-service/internal/app/service"
	"media-catalog-service/internal/domain"
	"media-catalog-service/internal/transport/httpserver/dto"
	"media-catalog-service/internal/validator"
)

// heroSize is the number of titles the hero carousel renders.
const heroSize = 5

// CatalogReader is the browse surface consumed by the catalog handlers.
type CatalogReader interface {
	HeroMovies(ctx context.Context) []domain.Movie
	ContentRows(ctx context.Context) service.ContentRows
	MoviesByGenre(ctx context.Context, genre string, page int) []domain.Movie
	SearchMovies(ctx context.Context, query string) []domain.Movie
}

// CatalogHandler handles the browse endpoints: hero, rows, genres, search.
type CatalogHandler struct {
	service   CatalogReader
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc CatalogReader, v *validator.Validator, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Hero handles GET /api/v1/movies/hero
func (h *CatalogHandler) Hero(c *fiber.Ctx) error {
	movies := h.service.HeroMovies(c.Context())
	if len(movies) > heroSize {
		movies = movies[:heroSize]
	}

	return c.JSON(dto.FromDomainMovies(movies))
}

// Rows handles GET /api/v1/movies/rows
func (h *CatalogHandler) Rows(c *fiber.Ctx) error {
	return c.JSON(dto.FromContentRows(h.service.ContentRows(c.Context())))
}

// Genre handles GET /api/v1/movies/genres/:genre
func (h *CatalogHandler) Genre(c *fiber.Ctx) error {
	genre := c.Params("genre")
	if genre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "genre is required",
			Code:  "MISSING_GENRE",
		})
	}

	var req dto.GenreRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	page := req.Page
	if page == 0 {
		page = 1
	}

	return c.JSON(dto.FromDomainMovies(h.service.MoviesByGenre(c.Context(), genre, page)))
}

// Search handles GET /api/v1/movies/search
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	return c.JSON(dto.FromDomainMovies(h.service.SearchMovies(c.Context(), req.Query)))
}
