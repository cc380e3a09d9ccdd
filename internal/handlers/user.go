package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the post lists shown on a user's profile page
type UserHandler struct {
	postService PostService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(postService PostService) *UserHandler {
	return &UserHandler{postService: postService}
}

// RegisterProfileRoutes registers profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.GET("/users/:id/likes", h.GetLikedPosts)
}

// GetUserPosts returns the posts written by a user
func (h *UserHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.postService.ListPostsByAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": collect(posts)})
}

// GetLikedPosts returns the posts a user currently likes
func (h *UserHandler) GetLikedPosts(c echo.Context) error {
	posts, err := h.postService.ListLikedPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": collect(posts)})
}
