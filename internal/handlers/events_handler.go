package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/menu-builder/internal/events"
	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/gorilla/websocket"
)

const (
	// EventSnapshot is sent first on every feed so clients start from the current menu
	EventSnapshot = "snapshot"
	// EventHeartbeat keeps idle SSE connections open through proxies
	EventHeartbeat = "heartbeat"

	defaultHeartbeatInterval = 15 * time.Second

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// menuSnapshotter is the slice of the menu store the feeds read from
type menuSnapshotter interface {
	GetAllItems() []models.MenuItem
}

// Snapshot is the payload of the first message on a change feed
type Snapshot struct {
	Total int               `json:"total"`
	Items []models.MenuItem `json:"items"`
}

// FeedMessage is one message on the WebSocket change feed
type FeedMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// EventsHandler streams menu changes over SSE and WebSocket
type EventsHandler struct {
	menu        menuSnapshotter
	broadcaster *events.Broadcaster
	logger      *slog.Logger
	upgrader    websocket.Upgrader

	// HeartbeatInterval is the gap between SSE heartbeats; zero or less uses the default
	HeartbeatInterval time.Duration
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(menu menuSnapshotter, broadcaster *events.Broadcaster, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		menu:        menu,
		broadcaster: broadcaster,
		logger:      logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		HeartbeatInterval: defaultHeartbeatInterval,
	}
}

func (h *EventsHandler) heartbeatInterval() time.Duration {
	if h.HeartbeatInterval <= 0 {
		return defaultHeartbeatInterval
	}
	return h.HeartbeatInterval
}

func (h *EventsHandler) snapshot() Snapshot {
	items := h.menu.GetAllItems()
	return Snapshot{Total: len(items), Items: items}
}

// StreamSSE handles GET /api/menu/events
func (h *EventsHandler) StreamSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Streaming unsupported", h.logger)
		return
	}

	// subscribe before the snapshot so no change between the two is missed
	client := h.broadcaster.Subscribe()
	if client == nil {
		WriteError(w, http.StatusServiceUnavailable, "Event feed closed", h.logger)
		return
	}
	defer h.broadcaster.Unsubscribe(client)

	// the server write timeout would otherwise cut the stream
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("could not clear write deadline", "error", err)
	}

	setupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	h.logger.Info("sse client connected", "remote_addr", r.RemoteAddr)
	defer h.logger.Info("sse client disconnected", "remote_addr", r.RemoteAddr)

	if err := sendSSEEvent(w, flusher, EventSnapshot, h.snapshot()); err != nil {
		h.logger.Warn("failed to send snapshot", "error", err)
		return
	}

	ticker := time.NewTicker(h.heartbeatInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-client.Events():
			if !ok {
				return
			}
			if err := sendSSEEvent(w, flusher, string(ev.Type), ev); err != nil {
				h.logger.Warn("failed to send menu event", "error", err)
				return
			}
		case t := <-ticker.C:
			if err := sendSSEEvent(w, flusher, EventHeartbeat, map[string]string{"time": t.UTC().Format(time.RFC3339)}); err != nil {
				return
			}
		}
	}
}

// ServeWebSocket handles GET /api/menu/ws
func (h *EventsHandler) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	client := h.broadcaster.Subscribe()
	if client == nil {
		WriteError(w, http.StatusServiceUnavailable, "Event feed closed", h.logger)
		return
	}
	defer h.broadcaster.Unsubscribe(client)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Info("websocket client connected", "remote_addr", r.RemoteAddr)
	defer h.logger.Info("websocket client disconnected", "remote_addr", r.RemoteAddr)

	done := make(chan struct{})
	go h.readPump(conn, done)

	if err := h.writeMessage(conn, EventSnapshot, h.snapshot()); err != nil {
		h.logger.Warn("failed to send snapshot", "error", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-client.Events():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "event feed closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := h.writeMessage(conn, string(ev.Type), ev); err != nil {
				h.logger.Warn("failed to send menu event", "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed, closing done on disconnect.
// The feed is server to client only; inbound data frames are discarded.
func (h *EventsHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", "error", err)
			}
			return
		}
	}
}

func (h *EventsHandler) writeMessage(conn *websocket.Conn, msgType string, data interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(FeedMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}
