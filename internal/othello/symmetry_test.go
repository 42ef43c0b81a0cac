package othello //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlipHorizontally(t *testing.T) {
	for i := range 64 {
		row := i / 8
		col := i % 8
		require.Equal(t, uint64(1)<<(row*8+7-col), flipHorizontally(uint64(1)<<i))
	}
}

func TestFlipVertically(t *testing.T) {
	for i := range 64 {
		row := i / 8
		col := i % 8
		require.Equal(t, uint64(1)<<(8*(7-row)+col), flipVertically(uint64(1)<<i))
	}
}

func TestFlipDiagonally(t *testing.T) {
	for i := range 64 {
		row := i / 8
		col := i % 8
		require.Equal(t, uint64(1)<<(8*col+row), flipDiagonally(uint64(1)<<i))
	}
}

func TestBoard_Transform(t *testing.T) {
	for _, board := range generateTestBoards(t) {
		for symmetry := range Symmetries {
			transformed := board.Transform(symmetry)
			require.Equal(t, board.Count(BLACK), transformed.Count(BLACK))
			require.Equal(t, board.Count(WHITE), transformed.Count(WHITE))

			for _, turn := range []Color{BLACK, WHITE} {
				for _, move := range board.ValidMoves(turn) {
					require.True(t, transformed.IsValidMove(turn, move.Transform(symmetry)))
					require.Equal(t,
						board.ApplyMove(turn, move).Transform(symmetry),
						transformed.ApplyMove(turn, move.Transform(symmetry)),
					)
				}
			}
		}
	}
}

func TestBoardStart_Symmetric(t *testing.T) {
	start := NewBoardStart()

	// The start position is invariant under both diagonal reflections,
	// which map the four opening moves onto each other.
	require.Equal(t, start, start.Transform(4))
	require.Equal(t, start, start.Transform(7))

	d3 := ParseMoveMust("d3")
	require.Equal(t, ParseMoveMust("c4"), d3.Transform(4))
	require.Equal(t, ParseMoveMust("f5"), d3.Transform(7))
	require.Equal(t, ParseMoveMust("e6"), d3.Transform(3))
	require.Equal(t, NoMove, NoMove.Transform(3))
}
