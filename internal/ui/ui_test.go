package ui

import (
	"strings"
	"testing"

	"github.com/lk16/desdemona/internal/arena"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/stretchr/testify/require"
)

func TestBoard(t *testing.T) {
	rendered := Board(othello.NewBoardStart(), othello.BLACK)

	// two discs each on the board, plus one in the footer
	require.Equal(t, 3, strings.Count(rendered, blackDisc))
	require.Equal(t, 3, strings.Count(rendered, whiteDisc))
	require.Equal(t, 4, strings.Count(rendered, legalMove))
	require.Contains(t, rendered, "a b c d e f g h")
	require.Contains(t, rendered, "black to move")

	rendered = Board(othello.NewBoardMust(1, 2), othello.WHITE)
	require.Zero(t, strings.Count(rendered, legalMove))
}

func TestResult(t *testing.T) {
	tests := []struct {
		name   string
		result arena.Result
		want   string
	}{
		{
			name:   "black wins",
			result: arena.Result{Black: "greedy", White: "random", BlackDiscs: 40, WhiteDiscs: 24, Outcome: arena.BlackWins},
			want:   "BLACK (greedy) WINS 40-24",
		},
		{
			name:   "white wins",
			result: arena.Result{Black: "greedy", White: "random", BlackDiscs: 20, WhiteDiscs: 44, Outcome: arena.WhiteWins},
			want:   "WHITE (random) WINS 20-44",
		},
		{
			name:   "draw",
			result: arena.Result{BlackDiscs: 32, WhiteDiscs: 32, Outcome: arena.Draw},
			want:   "DRAW 32-32",
		},
		{
			name: "forfeit",
			result: arena.Result{Black: "a", White: "b", Outcome: arena.WhiteWins,
				Forfeit: "black played a1: invalid move: a1"},
			want: "WHITE (b) WINS BY FORFEIT",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Contains(t, Result(&test.result), test.want)
		})
	}
}

func TestStandings(t *testing.T) {
	rendered := Standings([]arena.Standing{
		{Player: "alphabeta", Played: 4, Wins: 3, Draws: 1, DiscsFor: 160, DiscsAgainst: 96},
		{Player: "greedy", Played: 4, Losses: 3, Draws: 1, DiscsFor: 96, DiscsAgainst: 160},
	})

	require.Contains(t, rendered, "PLAYER")
	require.Contains(t, rendered, "alphabeta")
	require.Contains(t, rendered, "3.5")
	require.Contains(t, rendered, "96-160")
	require.Less(t, strings.Index(rendered, "alphabeta"), strings.Index(rendered, "greedy"))
}
