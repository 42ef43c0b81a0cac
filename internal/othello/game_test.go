package othello //nolint:testpackage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newPassingGame returns a game where white has to pass after black plays c1.
func newPassingGame() *Game {
	start := NewBoardMust(uint64(1)<<0|uint64(1)<<56, uint64(1)<<1|uint64(1)<<57)
	return NewGameWithStart(start, BLACK)
}

func TestNewGame(t *testing.T) {
	game := NewGame()

	require.NotNil(t, game)
	require.NotNil(t, game.metadata)
	require.Empty(t, game.moves)
	require.Equal(t, NewBoardStart(), game.Board())
	require.Equal(t, BLACK, game.Turn())
	require.False(t, game.IsOver())
}

func TestNewGameFromMoves(t *testing.T) {
	tests := []struct {
		name     string
		moves    []string
		errorMsg string
	}{
		{
			name:  "empty moves",
			moves: []string{},
		},
		{
			name:  "valid moves",
			moves: []string{"f5", "d6", "c3"},
		},
		{
			name:     "invalid move",
			moves:    []string{"f5", "a1"},
			errorMsg: "invalid move: a1",
		},
		{
			name:     "invalid pass",
			moves:    []string{"--"},
			errorMsg: "invalid move: --",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves := make([]Move, len(tt.moves))
			for i, field := range tt.moves {
				moves[i] = ParseMoveMust(field)
			}

			game, err := NewGameFromMoves(moves)

			if tt.errorMsg != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errorMsg)
				require.Nil(t, game)
				return
			}

			require.NoError(t, err)
			require.Equal(t, moves, game.Moves())
			require.Equal(t, len(moves)+4, game.Board().CountDiscs())
		})
	}
}

func TestGame_PushMoveAddsPass(t *testing.T) {
	game := newPassingGame()

	require.NoError(t, game.PushMove(ParseMoveMust("c1")))
	require.Equal(t, []Move{ParseMoveMust("c1"), NoMove}, game.Moves())
	require.Equal(t, BLACK, game.Turn())

	// explicit pass right after an automatic one is ignored
	require.NoError(t, game.PushMove(NoMove))
	require.Len(t, game.Moves(), 2)

	require.NoError(t, game.PushMove(ParseMoveMust("c8")))
	require.True(t, game.IsOver())
	require.Equal(t, "c1 -- c8", game.Transcript())

	winner, ok := game.Board().Winner()
	require.True(t, ok)
	require.Equal(t, BLACK, winner)
}

func TestGame_Moves(t *testing.T) {
	game := NewGame()
	require.Equal(t, []Move{}, game.Moves())

	require.NoError(t, game.PushMove(ParseMoveMust("d3")))

	moves := game.Moves()
	moves[0] = ParseMoveMust("a1")
	require.Equal(t, []Move{ParseMoveMust("d3")}, game.Moves())
}

func TestGame_PopMove(t *testing.T) {
	game := newPassingGame()
	start := game.Board()

	require.NoError(t, game.PushMove(ParseMoveMust("c1")))
	game.PopMove()

	require.Empty(t, game.Moves())
	require.Equal(t, start, game.Board())
	require.Equal(t, BLACK, game.Turn())

	// popping an empty game is a no-op
	game.PopMove()
	require.Empty(t, game.Moves())
}

func TestGame_MetaData(t *testing.T) {
	game := &Game{metadata: nil}
	require.Nil(t, game.MetaData())

	game.SetMetaData(GameMetadata{Site: "test"})
	result := game.MetaData()
	require.Equal(t, &GameMetadata{Site: "test"}, result)
	require.NotSame(t, result, game.metadata)
}

func TestGame_PGN(t *testing.T) {
	game, err := NewGameFromTranscript("f5 d6 c3")
	require.NoError(t, err)

	game.SetMetaData(GameMetadata{
		Site:    "arena",
		Date:    time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Players: [2]string{"alphabeta", "random"},
	})

	pgn := game.PGN()
	want := "[Site \"arena\"]\n" +
		"[Date \"2026.10.16\"]\n" +
		"[Black \"alphabeta\"]\n" +
		"[White \"random\"]\n" +
		"[Result \"5-2\"]\n" +
		"\n" +
		"1. f5 d6 2. c3\n"
	require.Equal(t, want, pgn)

	parsed, err := NewGameFromPGN(pgn)
	require.NoError(t, err)
	require.Equal(t, game.Moves(), parsed.Moves())
	require.Equal(t, game.MetaData(), parsed.MetaData())
}

func TestNewGameFromPGN_Invalid(t *testing.T) {
	_, err := NewGameFromPGN("[Site arena]\n\nf5")
	require.ErrorContains(t, err, "could not parse PGN metadata")

	_, err = NewGameFromPGN("[Site \"arena\"]\n\n1. f5 zz")
	require.ErrorContains(t, err, "failed to parse moves")
}
