package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/desdemona/internal"
	"github.com/lk16/desdemona/internal/arena"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/models"
	"github.com/lk16/desdemona/internal/othello"
	"github.com/lk16/desdemona/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

const testTimeout = 30 * 1000 // milliseconds, for app.Test

func newTestApp() *fiber.App {
	cfg := &config.ServerConfig{
		Token:       testToken,
		MoveTimeout: time.Minute,
	}
	return internal.BuildApp(cfg, &services.Services{})
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var payload io.Reader
	if body != nil {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		payload = &buf
	}

	req, err := http.NewRequest(method, path, payload)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-token", token)
	}

	resp, err := app.Test(req, testTimeout)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

func TestAuth(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name           string
		token          string
		wantStatusCode int
	}{
		{name: "no token", token: "", wantStatusCode: http.StatusUnauthorized},
		{name: "wrong token", token: "wrong", wantStatusCode: http.StatusUnauthorized},
		{name: "valid token", token: testToken, wantStatusCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doRequest(t, app, http.MethodGet, "/api/players", tt.token, nil)
			assert.Equal(t, tt.wantStatusCode, status)
		})
	}
}

func TestGetPlayers(t *testing.T) {
	status, body := doRequest(t, newTestApp(), http.MethodGet, "/api/players", testToken, nil)
	require.Equal(t, http.StatusOK, status)

	var response models.PlayersResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "alphabeta", response.Default)
	assert.Subset(t, response.Players, []string{"alphabeta", "greedy", "random"})
}

func TestPostMove(t *testing.T) {
	start := othello.NewBoardStart()

	tests := []struct {
		name           string
		payload        any
		wantStatusCode int
		wantMove       string
	}{
		{
			name:           "default player",
			payload:        models.MoveRequest{Board: start.Format(othello.BLACK)},
			wantStatusCode: http.StatusOK,
			wantMove:       "d3",
		},
		{
			name:           "with color",
			payload:        models.MoveRequest{Board: start.Format(othello.BLACK), Color: "black", Player: "alphabeta:depth=1"},
			wantStatusCode: http.StatusOK,
			wantMove:       "d3",
		},
		{
			name:           "no moves",
			payload:        models.MoveRequest{Board: othello.NewBoardMust(1, 2).Format(othello.WHITE)},
			wantStatusCode: http.StatusOK,
			wantMove:       "--",
		},
		{
			name:           "invalid board",
			payload:        models.MoveRequest{Board: "invalid"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "color mismatch",
			payload:        models.MoveRequest{Board: start.Format(othello.BLACK), Color: "white"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown player",
			payload:        models.MoveRequest{Board: start.Format(othello.BLACK), Player: "edax"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid body",
			payload:        "not an object",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	app := newTestApp()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, http.MethodPost, "/api/move", testToken, tt.payload)
			require.Equal(t, tt.wantStatusCode, status, string(body))

			if tt.wantMove == "" {
				return
			}

			var response models.MoveResponse
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, tt.wantMove, response.Move)
			assert.False(t, response.Cached)
		})
	}
}

func TestPostEvaluate(t *testing.T) {
	app := newTestApp()

	board := othello.NewBoardMust(0x8100000000000081, 0x0000000000000200)

	status, body := doRequest(t, app, http.MethodPost, "/api/evaluate", testToken,
		models.EvaluateRequest{Board: board.Format(othello.BLACK)})
	require.Equal(t, http.StatusOK, status, string(body))

	var response struct {
		Color string `json:"color"`
		Score int    `json:"score"`
		Terms struct {
			Phase  string `json:"phase"`
			Corner int    `json:"corner"`
		} `json:"terms"`
	}
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "black", response.Color)
	assert.Equal(t, "opening", response.Terms.Phase)
	assert.Equal(t, 80, response.Terms.Corner)

	status, _ = doRequest(t, app, http.MethodPost, "/api/evaluate", testToken,
		models.EvaluateRequest{Board: board.Format(othello.BLACK), Player: "greedy"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/evaluate", testToken,
		models.EvaluateRequest{Board: board.Format(othello.BLACK), Player: "alphabeta:depth=x"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPostMatch(t *testing.T) {
	app := newTestApp()

	status, body := doRequest(t, app, http.MethodPost, "/api/matches", testToken,
		models.MatchRequest{Black: "greedy", White: "random:seed=5"})
	require.Equal(t, http.StatusCreated, status, string(body))

	var result arena.Result
	require.NoError(t, json.Unmarshal(body, &result))
	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, "greedy", result.Black)
	assert.Equal(t, "random:seed=5", result.White)
	assert.NotEmpty(t, result.Transcript)

	status, _ = doRequest(t, app, http.MethodPost, "/api/matches", testToken,
		models.MatchRequest{Black: "greedy", White: "unknown"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMatchesWithoutDatabase(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{"/api/matches", "/api/matches/" + uuid.NewString(), "/api/standings"} {
		t.Run(path, func(t *testing.T) {
			status, _ := doRequest(t, app, http.MethodGet, path, testToken, nil)
			assert.Equal(t, http.StatusServiceUnavailable, status)
		})
	}
}
