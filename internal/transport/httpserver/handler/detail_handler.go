package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"media-catalog-service/internal/domain"
	"media-catalog-service/internal/transport/httpserver/dto"
	"media-catalog-service/internal/validator"
)

// DetailReader is the detail surface consumed by the detail handlers.
type DetailReader interface {
	MovieDetails(ctx context.Context, id string) *domain.MovieDetails
	Details(ctx context.Context, id string, kind domain.ContentType) *domain.SeriesDetail
	EpisodeByID(ctx context.Context, id string) *domain.Episode
	ActorByID(ctx context.Context, id string) *domain.Actor
}

// DetailHandler handles the detail endpoints: movie pages, series and anime
// detail, episodes and people.
type DetailHandler struct {
	service   DetailReader
	validator *validator.Validator
	logger    *zap.Logger
}

// NewDetailHandler creates a new DetailHandler.
func NewDetailHandler(svc DetailReader, v *validator.Validator, logger *zap.Logger) *DetailHandler {
	return &DetailHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// MovieByID handles GET /api/v1/movies/:id
func (h *DetailHandler) MovieByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	details := h.service.MovieDetails(c.Context(), id)
	if details == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "movie not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainMovieDetails(details))
}

// Details handles GET /api/v1/details/:id?type=movie|show|anime
func (h *DetailHandler) Details(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	var req dto.DetailsRequest
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

	detail := h.service.Details(c.Context(), id, domain.ContentType(req.Type))
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "title not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainSeriesDetail(detail))
}

// Episode handles GET /api/v1/episodes/:id
func (h *DetailHandler) Episode(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	episode := h.service.EpisodeByID(c.Context(), id)
	if episode == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "episode not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainEpisode(*episode))
}

// Actor handles GET /api/v1/actors/:id
func (h *DetailHandler) Actor(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	actor := h.service.ActorByID(c.Context(), id)
	if actor == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "person not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainActor(actor))
}
