package handlers

import (
	"net/http"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService PostService
	invalidator Invalidator
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService PostService, invalidator Invalidator) *PostHandler {
	return &PostHandler{
		postService: postService,
		invalidator: invalidator,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), currentUserID, req.Content, req.ImageRef)
	if err != nil {
		return serviceError(c, err)
	}

	invalidate(c, h.invalidator, ViewFeed, ViewProfile(currentUserID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// GetPosts returns the whole feed, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": collect(posts)})
}

// DeletePost deletes a post owned by the current user
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("id")

	if err := h.postService.DeletePost(c.Request().Context(), currentUserID, postID); err != nil {
		return serviceError(c, err)
	}

	invalidate(c, h.invalidator, ViewFeed, ViewProfile(currentUserID), ViewNotifications(currentUserID))
	return c.NoContent(http.StatusNoContent)
}
