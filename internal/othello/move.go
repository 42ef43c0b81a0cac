package othello

import (
	"fmt"
	"strings"
)

// Move is a square on the board, addressed by row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is returned when a player has no legal move.
var NoMove = Move{Row: -1, Col: -1}

// MoveFromIndex converts a bit index (row*8 + col) to a Move.
func MoveFromIndex(index int) Move {
	return Move{Row: index / Size, Col: index % Size}
}

// Index returns the bit index of the move.
func (m Move) Index() int {
	return m.Row*Size + m.Col
}

// OnBoard checks whether the move addresses a square on the board.
func (m Move) OnBoard() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// String returns the field notation (e.g. "d3"), or "--" for NoMove.
func (m Move) String() string {
	if !m.OnBoard() {
		return "--"
	}
	return fmt.Sprintf("%c%c", 'a'+m.Col, '1'+m.Row)
}

// ParseMove converts a field notation (e.g. "a1", "h8") to a Move.
// NoMove is returned if the field is "--", "ps" or "pa".
func ParseMove(field string) (Move, error) {
	if len(field) != 2 {
		return NoMove, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if field == "--" || field == "ps" || field == "pa" {
		return NoMove, nil
	}

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return NoMove, fmt.Errorf("invalid field: %q", field)
	}

	return Move{
		Row: int(field[1] - '1'),
		Col: int(field[0] - 'a'),
	}, nil
}

// ParseMoveMust is like ParseMove but panics on invalid input.
func ParseMoveMust(field string) Move {
	move, err := ParseMove(field)
	if err != nil {
		panic(err)
	}
	return move
}
