package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/desdemona/internal/arena"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/middleware"
	"github.com/lk16/desdemona/internal/models"
)

// DefaultTimeout bounds requests that do not play a full match.
const DefaultTimeout = 30 * time.Second

// Client talks to the HTTP API of a desdemona server.
type Client struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	// HTTPClient sends the requests, it can be replaced in tests.
	HTTPClient *http.Client
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// NewClient creates a new Client.
func NewClient(cfg *config.ClientConfig) *Client {
	return &Client{
		config:     cfg,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) logRequestAsCurl(req *http.Request, body []byte) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(req.Context(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(req.Method)
	builder.WriteString(" '")
	builder.WriteString(req.URL.String())
	builder.WriteString("'")

	for key, values := range req.Header {
		// Never log the token
		if strings.EqualFold(key, middleware.TokenHeader) {
			continue
		}

		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if len(body) > 0 {
		builder.WriteString(" -d '")
		builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
		builder.WriteString("'")
	}

	slog.Debug("Sending request", "command", builder.String())
}

// request sends a request and decodes the JSON response into result, if result is not nil.
func (c *Client) request(ctx context.Context, method, path string, payload, result any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.TokenHeader, c.config.Token)

	c.logRequestAsCurl(req, body)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Response", "status", resp.Status, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var parsed struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &parsed)
		return &StatusError{StatusCode: resp.StatusCode, Message: parsed.Error}
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultTimeout)
}

// Players lists the player modules the server knows.
func (c *Client) Players(ctx context.Context) (*models.PlayersResponse, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var response models.PlayersResponse
	if err := c.request(ctx, http.MethodGet, "/api/players", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	return &response, nil
}

// Move asks the server for a move.
func (c *Client) Move(ctx context.Context, request models.MoveRequest) (*models.MoveResponse, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var response models.MoveResponse
	if err := c.request(ctx, http.MethodPost, "/api/move", request, &response); err != nil {
		return nil, fmt.Errorf("failed to get move: %w", err)
	}
	return &response, nil
}

// Evaluate asks the server for the heuristic evaluation of a board.
func (c *Client) Evaluate(ctx context.Context, request models.EvaluateRequest) (*models.EvaluateResponse, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var response models.EvaluateResponse
	if err := c.request(ctx, http.MethodPost, "/api/evaluate", request, &response); err != nil {
		return nil, fmt.Errorf("failed to evaluate board: %w", err)
	}
	return &response, nil
}

// PlayMatch lets the server play a full match. It is only bounded by ctx.
func (c *Client) PlayMatch(ctx context.Context, request models.MatchRequest) (*arena.Result, error) {
	var result arena.Result
	if err := c.request(ctx, http.MethodPost, "/api/matches", request, &result); err != nil {
		return nil, fmt.Errorf("failed to play match: %w", err)
	}
	return &result, nil
}

// Matches lists stored matches, newest first. Zero limit means the server default.
func (c *Client) Matches(ctx context.Context, limit int, players ...string) ([]arena.Result, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	for _, player := range players {
		query.Add("player", player)
	}

	path := "/api/matches"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var results []arena.Result
	if err := c.request(ctx, http.MethodGet, path, nil, &results); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return results, nil
}

// Match returns one stored match.
func (c *Client) Match(ctx context.Context, id uuid.UUID) (*arena.Result, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var result arena.Result
	if err := c.request(ctx, http.MethodGet, "/api/matches/"+id.String(), nil, &result); err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &result, nil
}

// Standings returns the standings over all stored matches.
func (c *Client) Standings(ctx context.Context) ([]arena.Standing, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var standings []arena.Standing
	if err := c.request(ctx, http.MethodGet, "/api/standings", nil, &standings); err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}
	return standings, nil
}
