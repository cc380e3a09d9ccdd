package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-midea/interactions/internal/middleware"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
	"github.com/anonto42/nano-midea/interactions/internal/router"
	"github.com/anonto42/nano-midea/interactions/internal/services"
	"github.com/anonto42/nano-midea/interactions/pkg/config"
	"github.com/anonto42/nano-midea/interactions/pkg/firebase"
	"github.com/anonto42/nano-midea/interactions/pkg/logger"
	"github.com/anonto42/nano-midea/interactions/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logData, err := logger.New().FromPath(cfg.LogFile).WithLevel(cfg.LogLevel).Make()
	if err != nil {
		panic(err)
	}
	defer logData.Close()
	log := logData.Logger

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate models")
	}
	log.Info().Msg("PostgreSQL auto-migrations completed for all models.")

	store := repositories.NewGormStore(db.Postgres, repositories.WithSnapshotReads())

	var views repositories.ViewRepository = repositories.NopViewRepository{}
	if db.Mongo != nil {
		views = repositories.NewMongoViewRepository(db.Mongo.Database(cfg.MongoDatabase))
	}

	resolver, err := newResolver(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize identity resolver")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, log)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Dependencies{
		Store:    store,
		Views:    views,
		Resolver: resolver,
		Services: services.Config{StoreTimeout: cfg.StoreTimeout},
		Logger:   log,
	})

	// Start server
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func newResolver(cfg *config.Config, store repositories.Store) (middleware.Resolver, error) {
	switch cfg.AuthMode {
	case "firebase":
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		return middleware.NewFirebaseResolver(firebaseApp.AuthClient, store.Users()), nil
	case "jwt":
		return middleware.NewJWTResolver(cfg.JWTSecret), nil
	default:
		return nil, errors.New("unknown AUTH_MODE " + cfg.AuthMode)
	}
}

