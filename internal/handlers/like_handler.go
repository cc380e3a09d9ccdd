package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService LikeService
	invalidator Invalidator
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService LikeService, invalidator Invalidator) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		invalidator: invalidator,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.ToggleLike)
}

// ToggleLike likes the post, or removes the like if the user already liked it
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("post_id")

	result, err := h.likeService.ToggleLike(c.Request().Context(), currentUserID, postID)
	if err != nil {
		return serviceError(c, err)
	}

	invalidate(c, h.invalidator, ViewFeed, ViewProfile(currentUserID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}
