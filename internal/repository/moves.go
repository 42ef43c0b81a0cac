package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/players"
	"github.com/lk16/desdemona/internal/services"
	"github.com/redis/go-redis/v9"
)

// MoveCache stores moves computed by players in Redis, keyed by player config, board and color.
// All methods are no-ops when Redis is not configured.
type MoveCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewMoveCache creates a new MoveCache from the services stored in the fiber context.
func NewMoveCache(c *fiber.Ctx, ttl time.Duration) *MoveCache {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	return NewMoveCacheFromServices(services, ttl)
}

// NewMoveCacheFromServices creates a new MoveCache.
func NewMoveCacheFromServices(services *services.Services, ttl time.Duration) *MoveCache {
	return &MoveCache{redis: services.Redis, ttl: ttl}
}

// MoveCacheKey returns the Redis key for a move. Config should be normalized.
func MoveCacheKey(config string, board othello.Board, color othello.Color) string {
	return fmt.Sprintf("move:%s:%016x:%016x:%s", config, board.Black(), board.White(), color)
}

// Get looks up a cached move. The bool is false on a cache miss.
func (cache *MoveCache) Get(
	ctx context.Context,
	config string,
	board othello.Board,
	color othello.Color,
) (othello.Move, bool, error) {
	if cache.redis == nil {
		return othello.NoMove, false, nil
	}

	value, err := cache.redis.Get(ctx, MoveCacheKey(config, board, color)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return othello.NoMove, false, nil
		}
		return othello.NoMove, false, fmt.Errorf("error getting move from Redis: %w", err)
	}

	move, err := othello.ParseMove(value)
	if err != nil {
		return othello.NoMove, false, fmt.Errorf("error parsing cached move: %w", err)
	}

	return move, true, nil
}

// Set stores a move.
func (cache *MoveCache) Set(
	ctx context.Context,
	config string,
	board othello.Board,
	color othello.Color,
	move othello.Move,
) error {
	if cache.redis == nil {
		return nil
	}

	err := cache.redis.Set(ctx, MoveCacheKey(config, board, color), move.String(), cache.ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing move in Redis: %w", err)
	}

	return nil
}

// ErrInvalidPlayer is returned when a player configuration cannot be used.
var ErrInvalidPlayer = errors.New("invalid player")

// MoveRepository computes moves for players, using the MoveCache when Redis is configured.
type MoveRepository struct {
	cache   *MoveCache
	timeout time.Duration
}

// NewMoveRepository creates a new MoveRepository from the services and config stored in the fiber context.
func NewMoveRepository(c *fiber.Ctx) *MoveRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck

	return NewMoveRepositoryFromServices(services, cfg)
}

// NewMoveRepositoryFromServices creates a new MoveRepository.
func NewMoveRepositoryFromServices(services *services.Services, cfg *config.ServerConfig) *MoveRepository {
	timeout := cfg.MoveTimeout
	if timeout <= 0 {
		timeout = config.DefaultMoveTimeout
	}

	return &MoveRepository{
		cache:   NewMoveCacheFromServices(services, cfg.MoveCacheTTL),
		timeout: timeout,
	}
}

// BestMove returns the move the player with the given configuration plays on board for color.
// The bool reports whether the move came from the cache. Moves are only cached if the search finished
// before the timeout.
func (repo *MoveRepository) BestMove(
	ctx context.Context,
	playerConfig string,
	board othello.Board,
	color othello.Color,
) (othello.Move, bool, error) {
	playerConfig = players.NormalizeConfig(playerConfig)

	if !board.HasMoves(color) {
		return othello.NoMove, false, nil
	}

	useCache := cacheable(playerConfig)

	if useCache {
		move, ok, err := repo.cache.Get(ctx, playerConfig, board, color)
		if err != nil {
			slog.Warn("Move cache lookup failed", "error", err)
		} else if ok && board.IsValidMove(color, move) {
			return move, true, nil
		}
	}

	player, err := players.New(playerConfig, color)
	if err != nil {
		return othello.NoMove, false, fmt.Errorf("%w: %w", ErrInvalidPlayer, err)
	}
	defer player.Close()

	searchCtx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var move othello.Move
	var complete bool
	if decider, ok := player.(players.Decider); ok {
		decision := decider.Decide(searchCtx, board)
		move = decision.Move
		complete = decision.Complete()
	} else {
		move = player.Play(searchCtx, board)
		complete = searchCtx.Err() == nil
	}

	if useCache && complete {
		if err = repo.cache.Set(ctx, playerConfig, board, color, move); err != nil {
			slog.Warn("Move cache store failed", "error", err)
		}
	}

	return move, false, nil
}

// cacheable reports whether a player configuration always plays the same move on the same board.
// Unseeded random players do not.
func cacheable(playerConfig string) bool {
	name, params := players.SplitConfig(playerConfig)
	if name != "random" {
		return true
	}

	_, seeded := params["seed"]
	return seeded
}
