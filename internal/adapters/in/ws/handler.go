// Package ws exposes the realtime hub over WebSocket. Frames are JSON objects
// of the form {"event": "...", "data": ...}.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"pizzeria/internal/adapters/out/realtime"
	"pizzeria/internal/core/domain/model/kernel"
)

const (
	EventSubscribeOrder = "subscribeOrder"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

type subscriptionHub interface {
	Connect(id string) (*realtime.Connection, error)
	Disconnect(id string)
	Join(ctx context.Context, connectionID string, orderID kernel.UUID) error
	Send(ctx context.Context, connectionID string, msg realtime.Message) bool
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type Handler struct {
	hub      subscriptionHub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(hub subscriptionHub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws-handler"),
	}
}

// Serve upgrades the request and runs the connection until the peer leaves.
func (h *Handler) Serve(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}
	defer func() { _ = ws.Close() }()

	ctx := context.WithoutCancel(c.Request().Context())
	id := uuid.NewString()
	conn, err := h.hub.Connect(id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register connection", "error", err)
		return nil
	}
	h.logger.InfoContext(ctx, "client connected", "connectionId", id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(ws, conn)
	}()

	h.readLoop(ctx, ws, id)

	h.hub.Disconnect(id)
	<-done
	h.logger.InfoContext(ctx, "client disconnected", "connectionId", id)
	return nil
}

func (h *Handler) readLoop(ctx context.Context, ws *websocket.Conn, id string) {
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame inboundFrame
		if err := ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WarnContext(ctx, "websocket read failed", "connectionId", id, "error", err)
			}
			if isDecodeError(err) {
				h.replyError(ctx, id, "malformed frame")
				continue
			}
			return
		}
		h.dispatch(ctx, id, frame)
	}
}

func (h *Handler) dispatch(ctx context.Context, id string, frame inboundFrame) {
	switch frame.Event {
	case EventSubscribeOrder:
		var raw string
		if err := json.Unmarshal(frame.Data, &raw); err != nil {
			h.replyError(ctx, id, "order id must be a string")
			return
		}
		orderID, err := kernel.UUIDFromString(raw)
		if err != nil {
			h.replyError(ctx, id, "invalid order id")
			return
		}
		if err = h.hub.Join(ctx, id, orderID); err != nil {
			h.logger.ErrorContext(ctx, "join failed", "connectionId", id, "error", err)
			h.replyError(ctx, id, "subscription failed")
		}
	default:
		h.replyError(ctx, id, "unknown event "+frame.Event)
	}
}

func (h *Handler) replyError(ctx context.Context, id, message string) {
	h.hub.Send(ctx, id, realtime.Message{Event: realtime.EventError, Data: ErrorPayload{Message: message}})
}

// writeLoop is the only writer on ws. It stops when the hub closes the
// connection's channel or a write fails; closing ws then ends the read loop.
func (h *Handler) writeLoop(ws *websocket.Conn, conn *realtime.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-conn.Messages():
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := ws.WriteJSON(msg); err != nil {
				_ = ws.Close()
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = ws.Close()
				return
			}
		}
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
