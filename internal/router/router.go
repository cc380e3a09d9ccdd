package router

import (
	"github.com/anonto42/nano-midea/interactions/internal/handlers"
	"github.com/anonto42/nano-midea/interactions/internal/middleware"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
	"github.com/anonto42/nano-midea/interactions/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators SetupRoutes wires into the handlers.
type Dependencies struct {
	Store    repositories.Store
	Views    repositories.ViewRepository
	Resolver middleware.Resolver
	Services services.Config
	Logger   zerolog.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	views := deps.Views
	if views == nil {
		views = repositories.NopViewRepository{}
	}

	// --- Initialize Services ---
	postService := services.NewPostService(deps.Store, deps.Services)
	likeService := services.NewLikeService(deps.Store, deps.Services)
	commentService := services.NewCommentService(deps.Store, deps.Services)
	notificationService := services.NewNotificationService(deps.Store, deps.Services)
	followService := services.NewFollowService(deps.Store, deps.Services)

	// --- Routes with resolved identity ---
	api := e.Group("/api/v1")
	api.Use(middleware.Identity(deps.Resolver))

	handlers.NewPostHandler(postService, views).RegisterPostRoutes(api)
	handlers.NewLikeHandler(likeService, views).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(commentService, views).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService, views).RegisterNotificationRoutes(api)
	handlers.NewFollowHandler(followService, views).RegisterFollowRoutes(api)
	handlers.NewUserHandler(postService).RegisterProfileRoutes(api)
	handlers.NewFeedHandler(views).RegisterFeedRoutes(api)

	deps.Logger.Info().Int("routes", len(e.Routes())).Msg("All routes configured.")
}
