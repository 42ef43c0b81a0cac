package players

import (
	"context"
	"time"

	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/parameters"
	"golang.org/x/exp/rand"
)

func init() {
	RegisterModule("random", &Random{})
}

// Random creates players that pick a uniformly random legal move.
//
// Parameters:
//   - seed: makes the player reproducible. Defaults to the current time.
type Random struct{}

var _ Module = (*Random)(nil)

// NewPlayer implements Module.
func (*Random) NewPlayer(color othello.Color, params parameters.Params) (Player, error) {
	seed, err := parameters.PopParamOr(params, "seed", time.Now().UnixNano())
	if err != nil {
		return nil, err
	}

	if err = parameters.CheckEmpty(params); err != nil {
		return nil, err
	}

	return &randomPlayer{
		color: color,
		rand:  rand.New(rand.NewSource(uint64(seed))),
	}, nil
}

type randomPlayer struct {
	color othello.Color
	rand  *rand.Rand
}

func (p *randomPlayer) Play(_ context.Context, board othello.Board) othello.Move {
	moves := board.ValidMoves(p.color)
	if len(moves) == 0 {
		return othello.NoMove
	}
	return moves[p.rand.Intn(len(moves))]
}

func (p *randomPlayer) Close() {}
