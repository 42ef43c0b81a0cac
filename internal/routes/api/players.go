package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/desdemona/internal/bot"
	"github.com/lk16/desdemona/internal/models"
	"github.com/lk16/desdemona/internal/players"
	"github.com/lk16/desdemona/internal/repository"
)

// GetPlayers lists the registered player modules.
func GetPlayers(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.PlayersResponse{
		Players: players.Modules(),
		Default: players.DefaultConfig,
	})
}

// PostMove returns the move a player picks for a board.
func PostMove(c *fiber.Ctx) error {
	var payload models.MoveRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	board, turn, err := payload.Parse()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	playerConfig := payload.PlayerConfig()

	repo := repository.NewMoveRepository(c)
	move, cached, err := repo.BestMove(c.UserContext(), playerConfig, board, turn)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, repository.ErrInvalidPlayer) {
			status = fiber.StatusBadRequest
		}

		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.NewMoveResponse(move, playerConfig, cached))
}

// PostEvaluate returns the heuristic evaluation of a board for the side to move.
func PostEvaluate(c *fiber.Ctx) error {
	var payload models.EvaluateRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request := models.MoveRequest{Board: payload.Board}
	board, turn, err := request.Parse()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	name, params := players.SplitConfig(payload.Player)
	if name != "alphabeta" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "only alphabeta players have an evaluator",
		})
	}

	cfg, err := players.BotConfig(params)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	evaluator := bot.NewEvaluator(cfg)

	return c.Status(fiber.StatusOK).JSON(models.EvaluateResponse{
		Color: turn.String(),
		Score: evaluator.Evaluate(board, turn),
		Terms: evaluator.Terms(board, turn),
	})
}
