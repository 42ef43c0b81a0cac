package othello

import "math/bits"

// Symmetries is the number of board symmetries (rotations and reflections).
const Symmetries = 8

// flipHorizontally flips the bits of the bitboard horizontally
func flipHorizontally(x uint64) uint64 {
	k1 := uint64(0x5555555555555555)
	k2 := uint64(0x3333333333333333)
	k4 := uint64(0x0F0F0F0F0F0F0F0F)
	x = ((x >> 1) & k1) | ((x & k1) << 1)
	x = ((x >> 2) & k2) | ((x & k2) << 2)
	x = ((x >> 4) & k4) | ((x & k4) << 4)
	return x
}

// flipVertically flips the bits of the bitboard vertically
func flipVertically(x uint64) uint64 {
	return bits.ReverseBytes64(x)
}

// flipDiagonally flips the bits of the bitboard along the a1-h8 diagonal
func flipDiagonally(x uint64) uint64 {
	k1 := uint64(0x5500550055005500)
	k2 := uint64(0x3333000033330000)
	k4 := uint64(0x0F0F0F0F00000000)
	t := k4 & (x ^ (x << 28))
	x ^= t ^ (t >> 28)
	t = k2 & (x ^ (x << 14))
	x ^= t ^ (t >> 14)
	t = k1 & (x ^ (x << 7))
	x ^= t ^ (t >> 7)
	return x
}

func rotateBits(x uint64, symmetry int) uint64 {
	if symmetry&1 != 0 {
		x = flipHorizontally(x)
	}
	if symmetry&2 != 0 {
		x = flipVertically(x)
	}
	if symmetry&4 != 0 {
		x = flipDiagonally(x)
	}
	return x
}

// Transform returns the board mapped by one of the 8 symmetries (0 is the identity).
func (b Board) Transform(symmetry int) Board {
	return Board{
		black: rotateBits(b.black, symmetry),
		white: rotateBits(b.white, symmetry),
	}
}

// Transform returns the move mapped by one of the 8 symmetries.
func (m Move) Transform(symmetry int) Move {
	if !m.OnBoard() {
		return m
	}
	return MoveFromIndex(bits.TrailingZeros64(rotateBits(uint64(1)<<m.Index(), symmetry)))
}
