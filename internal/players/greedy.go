package players

import (
	"context"

	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/parameters"
)

func init() {
	RegisterModule("greedy", &Greedy{})
}

// Greedy creates players that maximize their disc count after the move. It takes no parameters.
type Greedy struct{}

var _ Module = (*Greedy)(nil)

// NewPlayer implements Module.
func (*Greedy) NewPlayer(color othello.Color, params parameters.Params) (Player, error) {
	if err := parameters.CheckEmpty(params); err != nil {
		return nil, err
	}
	return &greedyPlayer{color: color}, nil
}

type greedyPlayer struct {
	color othello.Color
}

func (p *greedyPlayer) Play(_ context.Context, board othello.Board) othello.Move {
	best := othello.NoMove
	bestCount := -1

	for _, move := range board.ValidMoves(p.color) {
		count := board.ApplyMove(p.color, move).Count(p.color)
		if count > bestCount {
			best = move
			bestCount = count
		}
	}

	return best
}

func (p *greedyPlayer) Close() {}
