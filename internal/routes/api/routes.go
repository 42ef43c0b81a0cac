package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/desdemona/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.Token())

	// Player routes
	apiGroup.Get("/players", GetPlayers)
	apiGroup.Post("/move", PostMove)
	apiGroup.Post("/evaluate", PostEvaluate)

	// Match routes
	apiGroup.Post("/matches", PostMatch)
	apiGroup.Get("/matches", GetMatches)
	apiGroup.Get("/matches/:id", GetMatch)
	apiGroup.Get("/standings", GetStandings)
}
