package handlers

import (
	"net/http"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService CommentService
	invalidator    Invalidator
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService CommentService, invalidator Invalidator) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		invalidator:    invalidator,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), currentUserID, postID, req.Body)
	if err != nil {
		return serviceError(c, err)
	}

	invalidate(c, h.invalidator, ViewFeed)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": comment})
}
