package handlers

import (
	"github.com/anonto42/nano-midea/interactions/internal/middleware"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the id set by the identity middleware, or ""
// when the request carries no identity.
func getUserIDFromContext(c echo.Context) string {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	return userID
}
