package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService FollowService
	invalidator   Invalidator
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService FollowService, invalidator Invalidator) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		invalidator:   invalidator,
	}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.GET("/users/:id/follow", h.GetFollowStats)
}

// ToggleFollow follows the user, or unfollows if already following
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID := c.Param("id")

	result, err := h.followService.ToggleFollow(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return serviceError(c, err)
	}

	invalidate(c, h.invalidator, ViewProfile(targetID), ViewProfile(currentUserID), ViewNotifications(targetID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetFollowStats returns follower counts and whether the current user follows
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	stats, err := h.followService.Stats(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}
