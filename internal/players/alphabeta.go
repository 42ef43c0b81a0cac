package players

import (
	"context"

	"github.com/lk16/desdemona/internal/bot"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/parameters"
)

func init() {
	RegisterModule("alphabeta", &AlphaBeta{})
}

// AlphaBeta creates players backed by the fixed-depth alpha-beta bot.
//
// Parameters:
//   - depth: ply depth below each root move, defaults to bot.DefaultPlyDepth.
//   - stability: enables the stability heuristic term.
type AlphaBeta struct{}

var _ Module = (*AlphaBeta)(nil)

// NewPlayer implements Module.
func (*AlphaBeta) NewPlayer(color othello.Color, params parameters.Params) (Player, error) {
	cfg, err := BotConfig(params)
	if err != nil {
		return nil, err
	}

	return &alphaBetaPlayer{bot: bot.New(color, cfg)}, nil
}

// BotConfig builds a bot configuration from player parameters, consuming the ones it knows.
func BotConfig(params parameters.Params) (bot.Config, error) {
	cfg := bot.DefaultConfig()

	var err error

	if cfg.PlyDepth, err = parameters.PopParamOr(params, "depth", cfg.PlyDepth); err != nil {
		return cfg, err
	}

	if cfg.Stability, err = parameters.PopParamOr(params, "stability", cfg.Stability); err != nil {
		return cfg, err
	}

	if err = parameters.CheckEmpty(params); err != nil {
		return cfg, err
	}

	if err = cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Decider is implemented by players that can report the search result behind their move.
type Decider interface {
	Decide(ctx context.Context, board othello.Board) bot.Decision
}

type alphaBetaPlayer struct {
	bot *bot.Bot
}

func (p *alphaBetaPlayer) Play(ctx context.Context, board othello.Board) othello.Move {
	return p.bot.Play(ctx, board)
}

// Decide exposes the full search result, for callers that report scores.
func (p *alphaBetaPlayer) Decide(ctx context.Context, board othello.Board) bot.Decision {
	return p.bot.Decide(ctx, board)
}

func (p *alphaBetaPlayer) Close() {}
