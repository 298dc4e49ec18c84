package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	catalog CatalogReader
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(catalog CatalogReader, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	rows := h.catalog.ContentRows(c.Context())
	hero := h.catalog.HeroMovies(c.Context())

	return c.Render("pages/dashboard", fiber.Map{
		"Title":            "Media Catalog Dashboard",
		"HeroCount":        len(hero),
		"TopRatedCount":    len(rows.TopRated),
		"NewReleasesCount": len(rows.NewReleases),
	}, "layouts/base")
}
