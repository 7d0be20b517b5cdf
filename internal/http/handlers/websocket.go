package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"goldlinks/internal/services"
	"goldlinks/pkg/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Status feed message types
const (
	MessageTypeStatus = "status"
	MessageTypeError  = "error"
)

// WebSocketMessage represents a message sent through WebSocket
type WebSocketMessage struct {
	Type      string              `json:"type"`
	Data      *models.StoreStatus `json:"data,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// StatusFeedHandler pushes a store's open/closed status over a WebSocket
type StatusFeedHandler struct {
	storeService *services.StoreService
	interval     time.Duration
	upgrader     websocket.Upgrader
}

// NewStatusFeedHandler creates a new status feed handler
func NewStatusFeedHandler(storeService *services.StoreService, interval time.Duration) *StatusFeedHandler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StatusFeedHandler{
		storeService: storeService,
		interval:     interval,
		upgrader: websocket.Upgrader{
			// Public read-only feed
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleStatusFeed godoc
// @Summary Live store status
// @Description WebSocket that sends the store's status on connect and again whenever it changes
// @Tags stores
// @Param id path string true "Store ID"
// @Success 101
// @Failure 404 {object} models.ErrorResponse
// @Router /ws/stores/{id}/status [get]
func (h *StatusFeedHandler) HandleStatusFeed(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "Invalid store ID")
	}

	// Reject unknown stores before upgrading
	current, err := h.storeService.Status(c.Request().Context(), id, time.Time{})
	if err != nil {
		return respondError(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go readPump(conn, cancel)

	logger := log.With().Str("store_id", id.String()).Logger()
	logger.Debug().Msg("Status feed connected")

	if err := writeStatus(conn, &current); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("Status feed disconnected")
			return nil

		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}

		case <-ticker.C:
			next, err := h.storeService.Status(ctx, id, time.Time{})
			if err != nil {
				msg := "Status unavailable"
				if errors.Is(err, services.ErrNotFound) {
					msg = "Store no longer exists"
				} else {
					logger.Error().Err(err).Msg("Failed to evaluate status for feed")
				}
				writeJSON(conn, WebSocketMessage{Type: MessageTypeError, Error: msg, Timestamp: time.Now()})
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, msg),
					time.Now().Add(writeWait))
				return nil
			}

			if statusChanged(current, next) {
				current = next
				if err := writeStatus(conn, &current); err != nil {
					return nil
				}
			}
		}
	}
}

// statusChanged ignores the evaluation time, which moves on every tick
func statusChanged(prev, next models.StoreStatus) bool {
	return prev.IsOpen != next.IsOpen || prev.NextChange != next.NextChange || prev.Timezone != next.Timezone
}

func writeStatus(conn *websocket.Conn, status *models.StoreStatus) error {
	return writeJSON(conn, WebSocketMessage{Type: MessageTypeStatus, Data: status, Timestamp: time.Now()})
}

func writeJSON(conn *websocket.Conn, msg WebSocketMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// readPump drains client frames so pongs and close frames are handled, and
// cancels the feed once the client goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
