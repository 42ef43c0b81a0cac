package othello

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var metadataRegex = regexp.MustCompile(`^\[(\w+) "(.*)"\]$`)

// GameMetadata describes where and by whom a game was played.
type GameMetadata struct {
	// Site is where the game was played
	Site string

	// Date is when the game was played
	Date time.Time

	// Players holds the player names indexed by color (BLACK/WHITE)
	Players [2]string
}

// Game represents an Othello game, either complete or in progress.
type Game struct {
	// metadata is the PGN metadata
	metadata *GameMetadata

	// moves is the list of moves in the game. Pass moves (NoMove) are added automatically.
	moves []Move

	// start is the board before any move is played.
	start Board

	// startTurn is the color to move on the start board.
	startTurn Color

	// board and turn track the current state, so we don't replay moves on every lookup.
	board Board
	turn  Color
}

// NewGameWithStart creates a new empty game with a custom start board.
func NewGameWithStart(start Board, turn Color) *Game {
	return &Game{
		metadata:  &GameMetadata{},
		moves:     make([]Move, 0),
		start:     start,
		startTurn: turn,
		board:     start,
		turn:      turn,
	}
}

// NewGame creates a new empty game from the standard starting position.
func NewGame() *Game {
	return NewGameWithStart(NewBoardStart(), BLACK)
}

// NewGameFromMoves creates a new game from a list of moves. Missing passes are inserted.
func NewGameFromMoves(moves []Move) (*Game, error) {
	game := NewGame()

	for _, move := range moves {
		if err := game.PushMove(move); err != nil {
			return nil, fmt.Errorf("failed to push move: %w", err)
		}
	}

	return game, nil
}

// NewGameFromTranscript creates a new game from a space separated list of fields, such as "f5 d6 c3".
// Words starting with a digit (move numbers) are skipped.
func NewGameFromTranscript(transcript string) (*Game, error) {
	moves := make([]Move, 0)

	for _, word := range strings.Fields(transcript) {
		if word[0] >= '0' && word[0] <= '9' {
			continue
		}

		move, err := ParseMove(word)
		if err != nil {
			return nil, fmt.Errorf("failed to parse move %s: %w", word, err)
		}

		moves = append(moves, move)
	}

	return NewGameFromMoves(moves)
}

// NewGameFromPGN parses a PGN document as produced by Game.PGN.
func NewGameFromPGN(content string) (*Game, error) {
	lines := strings.Split(content, "\n")

	metadata := &GameMetadata{}
	metadataRowCount := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			break
		}
		metadataRowCount++

		matches := metadataRegex.FindStringSubmatch(line)
		if len(matches) != 3 {
			return nil, fmt.Errorf("could not parse PGN metadata: %s", line)
		}

		switch matches[1] {
		case "Site":
			metadata.Site = matches[2]
		case "Date":
			date, err := time.Parse("2006.01.02", matches[2])
			if err != nil {
				return nil, fmt.Errorf("invalid date %q: %w", matches[2], err)
			}
			metadata.Date = date
		case "Black":
			metadata.Players[BLACK] = matches[2]
		case "White":
			metadata.Players[WHITE] = matches[2]
		}
	}

	game, err := NewGameFromTranscript(strings.Join(lines[metadataRowCount:], " "))
	if err != nil {
		return nil, fmt.Errorf("failed to parse moves: %w", err)
	}

	game.metadata = metadata
	return game, nil
}

// MetaData returns a copy of the game metadata.
func (g *Game) MetaData() *GameMetadata {
	if g.metadata == nil {
		return nil
	}

	metadata := *g.metadata
	return &metadata
}

// SetMetaData replaces the game metadata.
func (g *Game) SetMetaData(metadata GameMetadata) {
	g.metadata = &metadata
}

// Board returns the current board.
func (g *Game) Board() Board {
	return g.board
}

// Turn returns the color to move.
func (g *Game) Turn() Color {
	return g.turn
}

// Moves returns a copy of the moves played so far, passes included.
func (g *Game) Moves() []Move {
	moves := make([]Move, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// IsOver returns whether neither player can move.
func (g *Game) IsOver() bool {
	return g.board.IsGameOver()
}

// PushMove appends a move to the game. NoMove is a pass, which is only valid without legal moves.
func (g *Game) PushMove(move Move) error {
	moveCount := len(g.moves)

	// Prevent double pass.
	if moveCount > 0 && g.moves[moveCount-1] == NoMove && move == NoMove {
		return nil
	}

	if move == NoMove {
		if g.board.HasMoves(g.turn) {
			return fmt.Errorf("invalid move: %s", move)
		}
	} else if !g.board.IsValidMove(g.turn, move) {
		return fmt.Errorf("invalid move: %s", move)
	}

	g.moves = append(g.moves, move)
	g.board = g.board.ApplyMove(g.turn, move)
	g.turn = g.turn.Opponent()

	// Add pass move if current player doesn't have moves but opponent does.
	if move != NoMove && !g.board.HasMoves(g.turn) && g.board.HasMoves(g.turn.Opponent()) {
		g.moves = append(g.moves, NoMove)
		g.turn = g.turn.Opponent()
	}

	return nil
}

// PopMove undoes the last move, together with an automatically added pass.
func (g *Game) PopMove() {
	if len(g.moves) == 0 {
		return
	}

	poppedMoves := 1
	// Prevent having a last board without moves.
	if g.moves[len(g.moves)-1] == NoMove && len(g.moves) > 1 {
		poppedMoves = 2
	}

	g.moves = g.moves[:len(g.moves)-poppedMoves]
	g.replay()
}

// replay recomputes the current board from the start board.
func (g *Game) replay() {
	board := g.start
	turn := g.startTurn

	for _, move := range g.moves {
		board = board.ApplyMove(turn, move)
		turn = turn.Opponent()
	}

	g.board = board
	g.turn = turn
}

// Transcript returns the moves as space separated fields, with "--" for passes.
func (g *Game) Transcript() string {
	fields := make([]string, len(g.moves))
	for i, move := range g.moves {
		fields[i] = move.String()
	}
	return strings.Join(fields, " ")
}

// PGN returns the game as a PGN document.
func (g *Game) PGN() string {
	var sb strings.Builder

	metadata := g.MetaData()
	if metadata == nil {
		metadata = &GameMetadata{}
	}

	fmt.Fprintf(&sb, "[Site \"%s\"]\n", metadata.Site)
	if !metadata.Date.IsZero() {
		fmt.Fprintf(&sb, "[Date \"%s\"]\n", metadata.Date.Format("2006.01.02"))
	}
	fmt.Fprintf(&sb, "[Black \"%s\"]\n", metadata.Players[BLACK])
	fmt.Fprintf(&sb, "[White \"%s\"]\n", metadata.Players[WHITE])
	fmt.Fprintf(&sb, "[Result \"%d-%d\"]\n", g.board.Count(BLACK), g.board.Count(WHITE))
	sb.WriteString("\n")

	for i, move := range g.moves {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		sb.WriteString(" ")
		sb.WriteString(move.String())
	}
	sb.WriteString("\n")

	return sb.String()
}
