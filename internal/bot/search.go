package bot

import (
	"context"
	"math"

	"github.com/lk16/desdemona/internal/othello"
)

const (
	// MinScore and MaxScore seed alpha and beta at the root.
	MinScore = math.MinInt
	MaxScore = math.MaxInt
)

// Stats are collected while searching, for logging and benchmarking.
type Stats struct {
	// Nodes counts visited nodes, leaves included.
	Nodes uint64 `json:"nodes"`

	// Leaves counts calls to the evaluator.
	Leaves uint64 `json:"leaves"`

	// Prunes counts cutoffs.
	Prunes uint64 `json:"prunes"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Nodes += other.Nodes
	s.Leaves += other.Leaves
	s.Prunes += other.Prunes
}

// Searcher runs fixed-depth minimax with alpha-beta pruning.
// A Searcher is not safe for concurrent use, since it collects Stats.
type Searcher struct {
	cfg       Config
	evaluator *Evaluator
	stats     Stats
}

// NewSearcher creates a new Searcher.
func NewSearcher(cfg Config) *Searcher {
	return &Searcher{
		cfg:       cfg,
		evaluator: NewEvaluator(cfg),
	}
}

// Stats returns the stats collected since the last ResetStats.
func (s *Searcher) Stats() Stats {
	return s.stats
}

// ResetStats clears the collected stats.
func (s *Searcher) ResetStats() {
	s.stats = Stats{}
}

// AlphaBeta returns the value of board for perspective with toMove to play, searched from depth down to
// the configured ply depth. A node where toMove has no legal moves is evaluated as a leaf, the search does
// not continue with a pass.
//
// The only error is ctx.Err(), returned when ctx is done before the search finishes.
func (s *Searcher) AlphaBeta(
	ctx context.Context,
	board othello.Board,
	alpha, beta int,
	toMove othello.Color,
	depth int,
	perspective othello.Color,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.stats.Nodes++

	if depth >= s.cfg.PlyDepth {
		return s.leaf(board, perspective), nil
	}

	moves := board.ValidMoves(toMove)
	if len(moves) == 0 {
		return s.leaf(board, perspective), nil
	}

	if toMove == perspective {
		for _, move := range moves {
			child := board.ApplyMove(toMove, move)

			value, err := s.AlphaBeta(ctx, child, alpha, beta, toMove.Opponent(), depth+1, perspective)
			if err != nil {
				return 0, err
			}

			alpha = max(alpha, value)
			if alpha >= beta {
				s.stats.Prunes++
				return beta, nil
			}
		}
		return alpha, nil
	}

	for _, move := range moves {
		child := board.ApplyMove(toMove, move)

		value, err := s.AlphaBeta(ctx, child, alpha, beta, toMove.Opponent(), depth+1, perspective)
		if err != nil {
			return 0, err
		}

		beta = min(beta, value)
		if alpha >= beta {
			s.stats.Prunes++
			return alpha, nil
		}
	}
	return beta, nil
}

func (s *Searcher) leaf(board othello.Board, perspective othello.Color) int {
	s.stats.Leaves++
	return s.evaluator.Evaluate(board, perspective)
}
