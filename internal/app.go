package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/middleware"
	"github.com/lk16/desdemona/internal/repository"
	"github.com/lk16/desdemona/internal/routes"
	"github.com/lk16/desdemona/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 2 * time.Minute // matches are played within a single request
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
	schemaTimeout       = 10 * time.Second
)

// SetupApp loads the configuration from the environment, connects to the services and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	if services.Postgres != nil {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err = repository.NewMatchRepositoryFromServices(services).EnsureSchema(ctx); err != nil {
			slog.Error("Failed to create database schema", "error", err)
			os.Exit(1)
		}
	}

	return BuildApp(cfg, services), cfg
}

// BuildApp creates the Fiber app with all middleware and routes.
func BuildApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}
