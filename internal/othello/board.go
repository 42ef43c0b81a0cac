package othello

import (
	"fmt"
	"math/bits"
	"math/rand"
	"strconv"
)

const (
	// Size is the width and height of the board.
	Size = 8

	// Squares is the number of squares on the board.
	Squares = Size * Size

	// BoardStringLength is the length of the string produced by Board.Format.
	BoardStringLength = 34
)

// Board holds the discs of both players as bitboards. Bit index is row*8 + col.
// Boards are values: every method returning a Board leaves the receiver untouched.
type Board struct {
	black uint64
	white uint64
}

// NewBoard creates a new board from a black and white bitboard.
func NewBoard(black, white uint64) (Board, error) {
	if black&white != 0 {
		return Board{}, fmt.Errorf("invalid board: black and white discs cannot overlap")
	}

	return Board{
		black: black,
		white: white,
	}, nil
}

// NewBoardMust creates a new board from a black and white bitboard
// and panics if the board is invalid.
func NewBoardMust(black, white uint64) Board {
	b, err := NewBoard(black, white)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardStart creates a board with the standard starting position.
func NewBoardStart() Board {
	return NewBoardMust(0x0000000810000000, 0x0000001008000000)
}

// NewBoardEmpty creates a board without any discs.
func NewBoardEmpty() Board {
	return NewBoardMust(0, 0)
}

// NewBoardRandom plays random moves from the start position until the board holds discs discs.
// It returns the board and the color to move.
func NewBoardRandom(discs int) (Board, Color, error) {
	if discs < 4 || discs > Squares {
		return Board{}, BLACK, fmt.Errorf("invalid number of discs: %d", discs)
	}

	board := NewBoardStart()
	turn := BLACK

	for board.CountDiscs() < discs {
		validMoves := board.Moves(turn)
		if validMoves == 0 {
			if board.HasMoves(turn.Opponent()) {
				turn = turn.Opponent()
				continue
			}
			board = NewBoardStart()
			turn = BLACK
			continue
		}
		move := rand.Intn(Squares)
		if (uint64(1)<<move)&validMoves != 0 {
			board = board.ApplyMove(turn, MoveFromIndex(move))
			turn = turn.Opponent()
		}
	}

	return board, turn, nil
}

// ParseBoard parses the 34 character board string produced by Format.
// The first 16 hex characters hold the discs of the player to move, the next 16 those of
// the opponent, followed by "-b" or "-w" for the color to move.
func ParseBoard(s string) (Board, Color, error) {
	if len(s) != BoardStringLength {
		return Board{}, BLACK, fmt.Errorf("board string must be %d characters long, got %d", BoardStringLength, len(s))
	}

	player, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, BLACK, fmt.Errorf("invalid player discs: %w", err)
	}

	opponent, err := strconv.ParseUint(s[16:32], 16, 64)
	if err != nil {
		return Board{}, BLACK, fmt.Errorf("invalid opponent discs: %w", err)
	}

	var turn Color
	switch s[32:34] {
	case "-w":
		turn = WHITE
	case "-b":
		turn = BLACK
	default:
		return Board{}, BLACK, fmt.Errorf("invalid turn: %s", s[32:34])
	}

	if turn == WHITE {
		player, opponent = opponent, player
	}

	board, err := NewBoard(player, opponent)
	if err != nil {
		return Board{}, BLACK, err
	}

	return board, turn, nil
}

// Format returns the string representation of the board with turn to move.
func (b Board) Format(turn Color) string {
	turnString := "-b"
	if turn == WHITE {
		turnString = "-w"
	}

	return fmt.Sprintf("%016x%016x%s", b.discs(turn), b.discs(turn.Opponent()), turnString)
}

// discs returns the bitboard of color.
func (b Board) discs(c Color) uint64 {
	if c == WHITE {
		return b.white
	}
	return b.black
}

// Black returns the black bitboard.
func (b Board) Black() uint64 {
	return b.black
}

// White returns the white bitboard.
func (b Board) White() uint64 {
	return b.white
}

// Get returns the content of the square at row, col.
func (b Board) Get(row, col int) Cell {
	mask := uint64(1) << (row*Size + col)
	switch {
	case b.black&mask != 0:
		return BlackCell
	case b.white&mask != 0:
		return WhiteCell
	default:
		return Empty
	}
}

// Count returns the number of discs of color.
func (b Board) Count(c Color) int {
	return bits.OnesCount64(b.discs(c))
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	return bits.OnesCount64(b.black | b.white)
}

// Empties returns the number of empty squares.
func (b Board) Empties() int {
	return Squares - b.CountDiscs()
}

// Moves returns a bitset with all valid moves for color.
func (b Board) Moves(c Color) uint64 {
	return moves(b.discs(c), b.discs(c.Opponent()))
}

// HasMoves returns whether color has any valid move.
func (b Board) HasMoves(c Color) bool {
	return b.Moves(c) != 0
}

// ValidMoves returns the valid moves for color, ordered by ascending index (a1, b1, ..., h8).
func (b Board) ValidMoves(c Color) []Move {
	set := b.Moves(c)
	validMoves := make([]Move, 0, bits.OnesCount64(set))
	for set != 0 {
		index := bits.TrailingZeros64(set)
		validMoves = append(validMoves, MoveFromIndex(index))
		set &= set - 1
	}
	return validMoves
}

// IsValidMove checks if color can play move.
func (b Board) IsValidMove(c Color, move Move) bool {
	if !move.OnBoard() {
		return false
	}
	return b.Moves(c)&(uint64(1)<<move.Index()) != 0
}

// ApplyMove plays move for color and returns the resulting board.
// If the move is invalid, the same board is returned.
func (b Board) ApplyMove(c Color, move Move) Board {
	if !move.OnBoard() {
		return b
	}

	player := b.discs(c)
	opponent := b.discs(c.Opponent())

	moveBit := uint64(1) << move.Index()

	// Check if the move is on an empty square
	if (player|opponent)&moveBit != 0 {
		return b
	}

	flipped := flipped(player, opponent, move.Index())
	if flipped == 0 {
		return b
	}

	player |= flipped | moveBit
	opponent &^= flipped

	if c == WHITE {
		return Board{black: opponent, white: player}
	}
	return Board{black: player, white: opponent}
}

// IsGameOver returns whether neither player can move.
func (b Board) IsGameOver() bool {
	return !b.HasMoves(BLACK) && !b.HasMoves(WHITE)
}

// FinalScore returns the disc difference from the perspective of color,
// with empty squares awarded to the winner.
func (b Board) FinalScore(c Color) int {
	me := b.Count(c)
	opp := b.Count(c.Opponent())

	switch {
	case me > opp:
		return Squares - 2*opp
	case me < opp:
		return -(Squares - 2*me)
	default:
		return 0
	}
}

// Winner returns the color with the most discs. ok is false on a draw.
func (b Board) Winner() (winner Color, ok bool) {
	black := b.Count(BLACK)
	white := b.Count(WHITE)

	switch {
	case black > white:
		return BLACK, true
	case white > black:
		return WHITE, true
	default:
		return BLACK, false
	}
}

// ASCIIArtLines returns the ascii art lines for the board, marking moves for turn.
func (b Board) ASCIIArtLines(turn Color) []string {
	moves := b.Moves(turn)
	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for y := range Size {
		line := fmt.Sprintf("%d ", y+1)

		for x := range Size {
			mask := uint64(1) << (y*Size + x)

			switch {
			case b.white&mask != 0:
				line += "○ "
			case b.black&mask != 0:
				line += "● "
			case moves&mask != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[y+1] = line + "|"
	}

	lines[Size+1] = "+-----------------+"

	return lines
}

// moves returns a bitset with all valid moves for player.
// This code is adapted from Edax.
func moves(player, opponent uint64) uint64 {
	mask := opponent & 0x7E7E7E7E7E7E7E7E

	movesSet := shiftMoves(player, mask, 1)
	movesSet |= shiftMoves(player, mask, 7)
	movesSet |= shiftMoves(player, mask, 9)
	movesSet |= shiftMoves(player, opponent, 8)

	movesSet &^= player | opponent
	return movesSet
}

// shiftMoves finds the moves along one direction pair, using Kogge-Stone style shifts.
func shiftMoves(player, mask uint64, dir uint) uint64 {
	flipL := mask & (player << dir)
	flipL |= mask & (flipL << dir)
	maskL := mask & (mask << dir)
	flipL |= maskL & (flipL << (2 * dir))
	flipL |= maskL & (flipL << (2 * dir))
	flipR := mask & (player >> dir)
	flipR |= mask & (flipR >> dir)
	maskR := mask & (mask >> dir)
	flipR |= maskR & (flipR >> (2 * dir))
	flipR |= maskR & (flipR >> (2 * dir))
	return (flipL << dir) | (flipR >> dir)
}

// directions lists the eight (dx, dy) rays from a square.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// flipped returns a bitset with all the opponent discs that would be flipped if player played on move.
func flipped(player, opponent uint64, move int) uint64 {
	flipped := uint64(0)

	// If we try to play on an occupied square, this is an invalid move
	if (player|opponent)&(uint64(1)<<move) != 0 {
		return 0
	}

	for _, dir := range directions {
		dx, dy := dir[0], dir[1]
		s := 1
		for {
			curx := (move % Size) + (dx * s)
			cury := (move / Size) + (dy * s)
			if curx < 0 || curx >= Size || cury < 0 || cury >= Size {
				break
			}

			curBit := uint64(1) << (Size*cury + curx)

			if opponent&curBit != 0 {
				s++
				continue
			}

			if player&curBit != 0 && s >= 2 {
				for dist := 1; dist < s; dist++ {
					f := move + (dist * (Size*dy + dx))
					flipped |= uint64(1) << f
				}
			}
			break
		}
	}

	return flipped
}
