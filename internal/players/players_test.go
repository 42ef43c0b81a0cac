package players

import (
	"context"
	"testing"

	"github.com/lk16/desdemona/internal/bot"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/parameters"
	"github.com/stretchr/testify/require"
)

func TestModules(t *testing.T) {
	modules := Modules()
	require.Subset(t, modules, []string{"alphabeta", "greedy", "random"})
	require.IsNonDecreasing(t, modules)
}

func TestSplitConfig(t *testing.T) {
	tests := []struct {
		config     string
		wantName   string
		wantParams parameters.Params
	}{
		{config: "", wantName: DefaultConfig, wantParams: parameters.Params{}},
		{config: "greedy", wantName: "greedy", wantParams: parameters.Params{}},
		{config: "alphabeta:depth=3,stability", wantName: "alphabeta", wantParams: parameters.Params{"depth": "3", "stability": ""}},
		{config: "random:seed=1", wantName: "random", wantParams: parameters.Params{"seed": "1"}},
	}

	for _, test := range tests {
		t.Run(test.config, func(t *testing.T) {
			name, params := SplitConfig(test.config)
			require.Equal(t, test.wantName, name)
			require.Equal(t, test.wantParams, params)
		})
	}
}

func TestNormalizeConfig(t *testing.T) {
	require.Equal(t, "alphabeta", NormalizeConfig(""))
	require.Equal(t, "greedy", NormalizeConfig("greedy:"))
	require.Equal(t, "alphabeta:depth=3,stability", NormalizeConfig("alphabeta:stability, depth=3"))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{name: "default", config: ""},
		{name: "alphabeta", config: "alphabeta:depth=2,stability"},
		{name: "random", config: "random:seed=3"},
		{name: "greedy", config: "greedy"},
		{name: "unknown module", config: "edax", wantErr: `unknown player "edax"`},
		{name: "unknown param", config: "greedy:depth=3", wantErr: "unknown parameters: depth"},
		{name: "bad depth", config: "alphabeta:depth=x", wantErr: `failed to create player "alphabeta"`},
		{name: "depth too large", config: "alphabeta:depth=11", wantErr: "ply depth must be between 0 and 10"},
		{name: "bad seed", config: "random:seed=abc", wantErr: "seed"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			player, err := New(test.config, othello.BLACK)

			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				require.Nil(t, player)
				return
			}

			require.NoError(t, err)
			defer player.Close()

			move := player.Play(context.Background(), othello.NewBoardStart())
			require.True(t, othello.NewBoardStart().IsValidMove(othello.BLACK, move))
		})
	}
}

func TestBotConfig(t *testing.T) {
	cfg, err := BotConfig(parameters.NewFromConfigString("depth=2,stability"))
	require.NoError(t, err)

	want := bot.DefaultConfig()
	want.PlyDepth = 2
	want.Stability = true
	require.Equal(t, want, cfg)

	cfg, err = BotConfig(parameters.Params{})
	require.NoError(t, err)
	require.Equal(t, bot.DefaultConfig(), cfg)
}

func TestAlphaBeta_Decider(t *testing.T) {
	player, err := New("alphabeta", othello.BLACK)
	require.NoError(t, err)

	decider, ok := player.(Decider)
	require.True(t, ok)

	decision := decider.Decide(context.Background(), othello.NewBoardStart())
	require.Equal(t, othello.ParseMoveMust("d3"), decision.Move)
}

func TestRandom_Seeded(t *testing.T) {
	board, turn, err := othello.NewBoardRandom(20)
	require.NoError(t, err)

	first, err := New("random:seed=42", turn)
	require.NoError(t, err)

	second, err := New("random:seed=42", turn)
	require.NoError(t, err)

	for range 10 {
		require.Equal(t, first.Play(context.Background(), board), second.Play(context.Background(), board))
	}
}

func TestPlayers_NoMoves(t *testing.T) {
	board := othello.NewBoardMust(1, 2)

	for _, config := range []string{"alphabeta", "random", "greedy"} {
		t.Run(config, func(t *testing.T) {
			player, err := New(config, othello.WHITE)
			require.NoError(t, err)
			require.Equal(t, othello.NoMove, player.Play(context.Background(), board))
		})
	}
}

func TestGreedy_Play(t *testing.T) {
	board := othello.NewBoardStart().ApplyMove(othello.BLACK, othello.ParseMoveMust("d3"))

	player, err := New("greedy", othello.WHITE)
	require.NoError(t, err)

	// every white reply flips one disc, so the first one in board order wins
	require.Equal(t, othello.ParseMoveMust("c3"), player.Play(context.Background(), board))

	// black a1 a3, white b1 a4 a5: c1 flips one disc, a6 flips two
	board = othello.NewBoardMust(0x0000000000010001, 0x0000000101000002)
	require.Equal(t, []othello.Move{othello.ParseMoveMust("c1"), othello.ParseMoveMust("a6")},
		board.ValidMoves(othello.BLACK))

	player, err = New("greedy", othello.BLACK)
	require.NoError(t, err)
	require.Equal(t, othello.ParseMoveMust("a6"), player.Play(context.Background(), board))
}
