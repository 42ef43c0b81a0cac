package othello

import (
	"fmt"
	"strings"
)

// Color identifies one of the two players.
type Color int

const (
	BLACK Color = 0
	WHITE Color = 1
)

// Cell is the content of a single square.
type Cell int

const (
	Empty Cell = iota
	BlackCell
	WhiteCell
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	return BLACK + WHITE - c
}

// Cell returns the cell state occupied by a disc of this color.
func (c Color) Cell() Cell {
	if c == WHITE {
		return WhiteCell
	}
	return BlackCell
}

// String returns "black" or "white".
func (c Color) String() string {
	if c == WHITE {
		return "white"
	}
	return "black"
}

// MarshalText implements encoding.TextMarshaler so colors serialize as their name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	color, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = color
	return nil
}

// ParseColor parses "black", "white" or their one-letter abbreviations.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return BLACK, nil
	case "white", "w":
		return WHITE, nil
	default:
		return BLACK, fmt.Errorf("invalid color: %q", s)
	}
}
