package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/desdemona/internal/config"
	"github.com/lk16/desdemona/internal/models"
	"github.com/lk16/desdemona/internal/repository"
	"github.com/lk16/desdemona/internal/services"
)

// Conn is the part of a websocket connection the Handler uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	moves *repository.MoveRepository
	ws    Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, services *services.Services, cfg *config.ServerConfig) *Handler {
	return &Handler{
		moves: repository.NewMoveRepositoryFromServices(services, cfg),
		ws:    ws,
	}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		// Returned as-is, so callers can detect close errors.
		return nil, err
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("%w: unmarshal error: %w", errRequest, err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// errRequest marks errors caused by the client, they are answered instead of closing the connection.
var errRequest = errors.New("bad request")

func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, fmt.Errorf("%w: event field is either empty or missing", errRequest)
	}

	switch req.Event {
	case EventMoveRequest:
		return h.handleMoveRequest(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown event: %s", errRequest, req.Event)
	}
}

// Handle handles the websocket connection until it is closed or a message cannot be read.
func (h *Handler) Handle(ctx context.Context) error {
	for {
		req, err := h.readMessage()
		if err != nil {
			if !errors.Is(err, errRequest) {
				return err
			}

			// The envelope could not be decoded, so there is no id to answer to.
			if err = h.writeMessage(&Outgoing{Event: EventError, Data: ErrorData{Error: err.Error()}}); err != nil {
				return fmt.Errorf("ws write error: %w", err)
			}
			continue
		}

		respData, err := h.handleMessage(ctx, req)
		if err != nil {
			if !errors.Is(err, errRequest) {
				return fmt.Errorf("ws handle error: %w", err)
			}

			respData = &Outgoing{
				ID:    req.ID,
				Event: EventError,
				Data:  ErrorData{Error: err.Error()},
			}
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleMoveRequest(ctx context.Context, req *Incoming) (*Outgoing, error) {
	var reqData models.MoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("%w: move request unmarshal error: %w", errRequest, err)
	}

	board, turn, err := reqData.Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRequest, err)
	}

	playerConfig := reqData.PlayerConfig()

	move, cached, err := h.moves.BestMove(ctx, playerConfig, board, turn)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPlayer) {
			return nil, fmt.Errorf("%w: %w", errRequest, err)
		}
		return nil, fmt.Errorf("failed to compute move: %w", err)
	}

	outgoing := &Outgoing{
		ID:    req.ID,
		Event: EventMoveRequest,
		Data:  models.NewMoveResponse(move, playerConfig, cached),
	}

	return outgoing, nil
}
