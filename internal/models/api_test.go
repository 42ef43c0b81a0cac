package models

import (
	"testing"

	"github.com/lk16/desdemona/internal/othello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRequestParse(t *testing.T) {
	start := othello.NewBoardStart()

	tests := []struct {
		name       string
		request    MoveRequest
		wantErr    bool
		wantErrMsg string
		wantTurn   othello.Color
	}{
		{
			name:     "OK",
			request:  MoveRequest{Board: start.Format(othello.BLACK)},
			wantTurn: othello.BLACK,
		},
		{
			name:     "MatchingColor",
			request:  MoveRequest{Board: start.Format(othello.WHITE), Color: "white"},
			wantTurn: othello.WHITE,
		},
		{
			name:       "MismatchingColor",
			request:    MoveRequest{Board: start.Format(othello.WHITE), Color: "b"},
			wantErr:    true,
			wantErrMsg: "color does not match the board",
		},
		{
			name:       "InvalidColor",
			request:    MoveRequest{Board: start.Format(othello.BLACK), Color: "red"},
			wantErr:    true,
			wantErrMsg: `invalid color: "red"`,
		},
		{
			name:       "InvalidBoard",
			request:    MoveRequest{Board: "xyz"},
			wantErr:    true,
			wantErrMsg: "invalid board",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, turn, err := tt.request.Parse()

			if tt.wantErr {
				assert.ErrorContains(t, err, tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, start, board)
			assert.Equal(t, tt.wantTurn, turn)
		})
	}
}

func TestMoveRequestPlayerConfig(t *testing.T) {
	assert.Equal(t, "alphabeta", (&MoveRequest{}).PlayerConfig())
	assert.Equal(t, "alphabeta:depth=2", (&MoveRequest{Player: "alphabeta:depth=2"}).PlayerConfig())
}

func TestNewMoveResponse(t *testing.T) {
	assert.Equal(t,
		MoveResponse{Move: "d3", Field: 19, Player: "greedy", Cached: true},
		NewMoveResponse(othello.ParseMoveMust("d3"), "greedy", true),
	)

	assert.Equal(t,
		MoveResponse{Move: "--", Field: -1, Player: "greedy"},
		NewMoveResponse(othello.NoMove, "greedy", false),
	)
}

func TestMatchRequestValidate(t *testing.T) {
	assert.NoError(t, (&MatchRequest{Black: "greedy", White: "random:seed=1"}).Validate())
	assert.NoError(t, (&MatchRequest{}).Validate())
	assert.Error(t, (&MatchRequest{Black: "greedy", White: "unknown"}).Validate())
	assert.Error(t, (&MatchRequest{Black: "alphabeta:depth=99", White: "greedy"}).Validate())
}
