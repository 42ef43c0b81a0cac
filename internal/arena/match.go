// Package arena plays matches between players and aggregates their results.
package arena

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/players"
)

// DefaultMoveTimeout bounds a single move when Options.MoveTimeout is not set.
const DefaultMoveTimeout = 10 * time.Second

// Outcome is the result of a match from the point of view of the board.
type Outcome string

const (
	BlackWins Outcome = "black"
	WhiteWins Outcome = "white"
	Draw      Outcome = "draw"
)

// Winner returns the outcome where c wins.
func Winner(c othello.Color) Outcome {
	if c == othello.BLACK {
		return BlackWins
	}
	return WhiteWins
}

// Result describes a finished match.
type Result struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	Black      string        `json:"black" db:"black"`
	White      string        `json:"white" db:"white"`
	BlackDiscs int           `json:"black_discs" db:"black_discs"`
	WhiteDiscs int           `json:"white_discs" db:"white_discs"`
	Outcome    Outcome       `json:"outcome" db:"outcome"`
	Forfeit    string        `json:"forfeit,omitempty" db:"forfeit"`
	Transcript string        `json:"transcript" db:"transcript"`
	Duration   time.Duration `json:"duration" db:"duration"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// Options control how a match is played.
type Options struct {
	// MoveTimeout bounds the time a player gets for one move. Zero means DefaultMoveTimeout.
	MoveTimeout time.Duration

	// OnMove is called after every move, including automatic passes, if set.
	OnMove func(game *othello.Game)
}

func (o Options) moveTimeout() time.Duration {
	if o.MoveTimeout <= 0 {
		return DefaultMoveTimeout
	}
	return o.MoveTimeout
}

// PlayMatch plays a game from the start position between black and white.
//
// A player that returns an illegal move, or no move while it has legal moves, forfeits the match.
// The only error is ctx.Err(), when ctx is done before the game ends.
func PlayMatch(ctx context.Context, black, white players.Player, opts Options) (*Result, error) {
	start := time.Now()
	game := othello.NewGame()
	seats := [2]players.Player{othello.BLACK: black, othello.WHITE: white}

	result := &Result{
		ID:        uuid.New(),
		CreatedAt: start,
	}

	for !game.IsOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		turn := game.Turn()
		board := game.Board()

		var move othello.Move
		if board.HasMoves(turn) {
			move = playMove(ctx, seats[turn], board, opts.moveTimeout())
		} else {
			move = othello.NoMove
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := game.PushMove(move); err != nil {
			result.Forfeit = fmt.Sprintf("%s played %s: %s", turn, move, err)
			result.Outcome = Winner(turn.Opponent())
			slog.Debug("Player forfeits", "match", result.ID, "color", turn, "move", move)
			break
		}

		if opts.OnMove != nil {
			opts.OnMove(game)
		}
	}

	board := game.Board()
	result.BlackDiscs = board.Count(othello.BLACK)
	result.WhiteDiscs = board.Count(othello.WHITE)
	result.Transcript = game.Transcript()
	result.Duration = time.Since(start)

	if result.Forfeit == "" {
		result.Outcome = Draw
		if winner, ok := board.Winner(); ok {
			result.Outcome = Winner(winner)
		}
	}

	return result, nil
}

func playMove(ctx context.Context, player players.Player, board othello.Board, timeout time.Duration) othello.Move {
	moveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return player.Play(moveCtx, board)
}

// RunMatch creates both players from their configurations, plays a match and closes them.
func RunMatch(ctx context.Context, blackConfig, whiteConfig string, opts Options) (*Result, error) {
	black, err := players.New(blackConfig, othello.BLACK)
	if err != nil {
		return nil, fmt.Errorf("failed to create black player: %w", err)
	}
	defer black.Close()

	white, err := players.New(whiteConfig, othello.WHITE)
	if err != nil {
		return nil, fmt.Errorf("failed to create white player: %w", err)
	}
	defer white.Close()

	result, err := PlayMatch(ctx, black, white, opts)
	if err != nil {
		return nil, err
	}

	result.Black = players.NormalizeConfig(blackConfig)
	result.White = players.NormalizeConfig(whiteConfig)

	slog.Debug("Match finished",
		"id", result.ID,
		"black", result.Black,
		"white", result.White,
		"outcome", result.Outcome,
		"score", fmt.Sprintf("%d-%d", result.BlackDiscs, result.WhiteDiscs),
		"duration", result.Duration,
	)

	return result, nil
}
