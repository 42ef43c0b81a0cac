package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/lk16/desdemona/internal/othello"
)

// Decision describes the outcome of one move selection.
type Decision struct {
	Move  othello.Move `json:"move"`
	Score int          `json:"score"`

	// Searched is the number of root moves whose search completed.
	Searched int `json:"searched"`

	// Candidates is the number of legal root moves.
	Candidates int `json:"candidates"`

	Stats   Stats         `json:"stats"`
	Elapsed time.Duration `json:"elapsed"`
}

// Complete returns whether every root move was searched before the deadline.
func (d Decision) Complete() bool {
	return d.Searched == d.Candidates
}

// Bot picks moves for one color using a fixed-depth alpha-beta search.
type Bot struct {
	color    othello.Color
	searcher *Searcher
}

// New creates a new Bot playing color.
func New(color othello.Color, cfg Config) *Bot {
	return &Bot{
		color:    color,
		searcher: NewSearcher(cfg),
	}
}

// Color returns the color the bot plays.
func (b *Bot) Color() othello.Color {
	return b.color
}

// Play returns the move to play on board, or othello.NoMove if there is none.
func (b *Bot) Play(ctx context.Context, board othello.Board) othello.Move {
	return b.Decide(ctx, board).Move
}

// Decide searches every legal move in board order and keeps the first one with the highest value.
//
// When ctx is done before all moves are searched, the interrupted search is discarded and the best
// completed move is returned. If no search completed, the first legal move is returned.
func (b *Bot) Decide(ctx context.Context, board othello.Board) Decision {
	start := time.Now()
	b.searcher.ResetStats()

	moves := board.ValidMoves(b.color)

	decision := Decision{
		Move:       othello.NoMove,
		Score:      MinScore,
		Candidates: len(moves),
	}

	for _, move := range moves {
		child := board.ApplyMove(b.color, move)

		value, err := b.searcher.AlphaBeta(ctx, child, MinScore, MaxScore, b.color.Opponent(), 0, b.color)
		if err != nil {
			slog.Debug("Search interrupted", "color", b.color, "searched", decision.Searched, "error", err)
			break
		}

		decision.Searched++

		if value > decision.Score {
			decision.Score = value
			decision.Move = move
		}
	}

	if decision.Move == othello.NoMove && len(moves) > 0 {
		decision.Move = moves[0]
	}

	decision.Stats = b.searcher.Stats()
	decision.Elapsed = time.Since(start)

	b.logStats(decision)

	return decision
}

func (b *Bot) logStats(decision Decision) {
	elapsedSeconds := decision.Elapsed.Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(decision.Stats.Nodes) / elapsedSeconds)
	}

	slog.Debug("Selected move",
		"color", b.color,
		"move", decision.Move,
		"score", decision.Score,
		"searched", decision.Searched,
		"candidates", decision.Candidates,
		"nodes", decision.Stats.Nodes,
		"prunes", decision.Stats.Prunes,
		"seconds", elapsedSeconds,
		"nodes_per_second", nodesPerSecond,
	)
}
