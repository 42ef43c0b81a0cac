package api

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/desdemona/internal/arena"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/models"
	"github.com/lk16/desdemona/internal/repository"
)

func noDatabase(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": repository.ErrNoDatabase.Error(),
	})
}

// PostMatch plays a match between two players and stores the result if a database is configured.
func PostMatch(c *fiber.Ctx) error {
	var payload models.MatchRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	result, err := arena.RunMatch(c.UserContext(), payload.Black, payload.White, arena.Options{
		MoveTimeout: cfg.MoveTimeout,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	repo := repository.NewMatchRepository(c)
	if repo.Enabled() {
		if err = repo.Save(c.UserContext(), result); err != nil {
			slog.Error("Failed to save match", "id", result.ID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetMatches lists stored matches, newest first.
func GetMatches(c *fiber.Ctx) error {
	repo := repository.NewMatchRepository(c)
	if !repo.Enabled() {
		return noDatabase(c)
	}

	limit := repository.DefaultListLimit
	if value := c.Query("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = parsed
	}

	var playerFilter []string
	for _, player := range c.Context().QueryArgs().PeekMulti("player") {
		playerFilter = append(playerFilter, string(player))
	}

	results, err := repo.List(c.UserContext(), limit, playerFilter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

// GetMatch returns a single stored match.
func GetMatch(c *fiber.Ctx) error {
	repo := repository.NewMatchRepository(c)
	if !repo.Enabled() {
		return noDatabase(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match id",
		})
	}

	result, err := repo.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetStandings returns the standings over all stored matches.
func GetStandings(c *fiber.Ctx) error {
	repo := repository.NewMatchRepository(c)
	if !repo.Enabled() {
		return noDatabase(c)
	}

	standings, err := repo.Standings(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(standings)
}
