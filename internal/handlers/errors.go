package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/nano-midea/interactions/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// serviceError converts a service failure into the HTTP error echo renders.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to modify this resource")
	case errors.Is(err, services.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Conflicting request, try again")
	case errors.Is(err, services.ErrStoreUnavailable):
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("store unavailable")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("unexpected error")
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
