package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// FeedHandler exposes the version counters of cached views so clients can
// tell when to refetch
type FeedHandler struct {
	views ViewVersions
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(views ViewVersions) *FeedHandler {
	return &FeedHandler{views: views}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/views/:key/version", h.GetViewVersion)
}

// GetViewVersion returns the current version of a cached view
func (h *FeedHandler) GetViewVersion(c echo.Context) error {
	key := c.Param("key")

	version, err := h.views.Version(c.Request().Context(), key)
	if err != nil {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("key", key).Msg("failed to read view version")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"key": key, "version": version}})
}
