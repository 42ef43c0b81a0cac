package bot

import (
	"context"
	"testing"

	"github.com/lk16/desdemona/internal/othello"
	"github.com/stretchr/testify/require"
)

func TestBot_OpeningMove(t *testing.T) {
	bot := New(othello.BLACK, DefaultConfig())
	require.Equal(t, othello.BLACK, bot.Color())

	decision := bot.Decide(context.Background(), othello.NewBoardStart())

	// All four openings are symmetric, so the first one in board order wins the tie.
	require.Equal(t, othello.ParseMoveMust("d3"), decision.Move)
	require.Equal(t, 4, decision.Candidates)
	require.Equal(t, 4, decision.Searched)
	require.True(t, decision.Complete())
	require.Positive(t, decision.Stats.Nodes)
}

func TestBot_PlayIsLegal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlyDepth = 2

	for discs := 4; discs <= 60; discs += 4 {
		board, turn, err := othello.NewBoardRandom(discs)
		require.NoError(t, err)

		move := New(turn, cfg).Play(context.Background(), board)

		if board.HasMoves(turn) {
			require.True(t, board.IsValidMove(turn, move), "move %s on %s", move, board.Format(turn))
		} else {
			require.Equal(t, othello.NoMove, move)
		}
	}
}

func TestBot_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlyDepth = 3

	board, turn, err := othello.NewBoardRandom(24)
	require.NoError(t, err)

	first := New(turn, cfg).Decide(context.Background(), board)
	second := New(turn, cfg).Decide(context.Background(), board)

	require.Equal(t, first.Move, second.Move)
	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.Stats, second.Stats)
}

func TestBot_BestScore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlyDepth = 2

	board, turn, err := othello.NewBoardRandom(30)
	require.NoError(t, err)

	if !board.HasMoves(turn) {
		turn = turn.Opponent()
	}

	decision := New(turn, cfg).Decide(context.Background(), board)

	searcher := NewSearcher(cfg)
	var firstBest othello.Move
	best := MinScore

	for _, move := range board.ValidMoves(turn) {
		value, err := searcher.AlphaBeta(context.Background(), board.ApplyMove(turn, move), MinScore, MaxScore,
			turn.Opponent(), 0, turn)
		require.NoError(t, err)

		if value > best {
			best = value
			firstBest = move
		}
	}

	require.Equal(t, best, decision.Score)
	require.Equal(t, firstBest, decision.Move)
}

func TestBot_SingleMove(t *testing.T) {
	board := othello.NewBoardMust(1, 2)

	decision := New(othello.BLACK, DefaultConfig()).Decide(context.Background(), board)
	require.Equal(t, othello.ParseMoveMust("c1"), decision.Move)
	require.Equal(t, 1, decision.Candidates)
}

func TestBot_NoMoves(t *testing.T) {
	tests := []struct {
		name  string
		board othello.Board
		color othello.Color
	}{
		{name: "empty board", board: othello.NewBoardEmpty(), color: othello.BLACK},
		{name: "opponent only", board: othello.NewBoardMust(1, 2), color: othello.WHITE},
		{name: "full board", board: othello.NewBoardMust(full, 0), color: othello.WHITE},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decision := New(test.color, DefaultConfig()).Decide(context.Background(), test.board)
			require.Equal(t, othello.NoMove, decision.Move)
			require.Zero(t, decision.Candidates)
			require.True(t, decision.Complete())
		})
	}
}

func TestBot_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decision := New(othello.WHITE, DefaultConfig()).Decide(ctx, othello.NewBoardStart().ApplyMove(
		othello.BLACK, othello.ParseMoveMust("d3")))

	require.Equal(t, othello.ParseMoveMust("c3"), decision.Move)
	require.Zero(t, decision.Searched)
	require.False(t, decision.Complete())
}
