package models

import (
	"errors"
	"fmt"

	"github.com/lk16/desdemona/internal/bot"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/players"
)

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Commit string `json:"commit"`
}

// PlayersResponse lists the registered player modules.
type PlayersResponse struct {
	Players []string `json:"players"`
	Default string   `json:"default"`
}

// MoveRequest asks a player for a move.
type MoveRequest struct {
	// Board is a board string as produced by othello.Board.Format, it includes the side to move.
	Board string `json:"board"`

	// Color optionally names the side to move. It must match the board string if set.
	Color string `json:"color,omitempty"`

	// Player is a player configuration, empty means players.DefaultConfig.
	Player string `json:"player,omitempty"`
}

// Parse validates the request and returns the board and the side to move.
func (r *MoveRequest) Parse() (othello.Board, othello.Color, error) {
	board, turn, err := othello.ParseBoard(r.Board)
	if err != nil {
		return othello.Board{}, othello.BLACK, fmt.Errorf("invalid board: %w", err)
	}

	if r.Color != "" {
		color, err := othello.ParseColor(r.Color)
		if err != nil {
			return othello.Board{}, othello.BLACK, err
		}

		if color != turn {
			return othello.Board{}, othello.BLACK, errors.New("color does not match the board")
		}
	}

	return board, turn, nil
}

// PlayerConfig returns the normalized player configuration.
func (r *MoveRequest) PlayerConfig() string {
	return players.NormalizeConfig(r.Player)
}

// MoveResponse holds the move chosen by a player.
type MoveResponse struct {
	// Move is the move in field notation, "--" when there is no legal move.
	Move string `json:"move"`

	// Field is the square index 0-63 in row-major order, or -1 for no move.
	Field int `json:"field"`

	Player string `json:"player"`
	Cached bool   `json:"cached"`
}

// NewMoveResponse creates a MoveResponse.
func NewMoveResponse(move othello.Move, player string, cached bool) MoveResponse {
	field := -1
	if move.OnBoard() {
		field = move.Index()
	}

	return MoveResponse{
		Move:   move.String(),
		Field:  field,
		Player: player,
		Cached: cached,
	}
}

// EvaluateRequest asks for the heuristic evaluation of a board.
type EvaluateRequest struct {
	Board string `json:"board"`

	// Player is an alphabeta configuration whose evaluator is used, empty means the defaults.
	Player string `json:"player,omitempty"`
}

// EvaluateResponse holds the evaluation of a board for the side to move.
type EvaluateResponse struct {
	Color string    `json:"color"`
	Score int       `json:"score"`
	Terms bot.Terms `json:"terms"`
}

// MatchRequest asks the server to play a match.
type MatchRequest struct {
	Black string `json:"black"`
	White string `json:"white"`
}

// Validate checks that both player configurations can be created.
func (r *MatchRequest) Validate() error {
	for _, config := range []string{r.Black, r.White} {
		player, err := players.New(config, othello.BLACK)
		if err != nil {
			return err
		}
		player.Close()
	}
	return nil
}
