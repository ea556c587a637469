package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	models "PawMatch/internal/domain/models"
	applogger "PawMatch/pkg/logger"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsSendBuffer   = 16
)

// BookingEvent is one message on the live booking stream.
type BookingEvent struct {
	Type    string          `json:"type"`
	Booking *models.Booking `json:"booking"`
	SentAt  time.Time       `json:"sent_at"`
}

// Hub fans booking events out to connected websocket clients. Slow clients
// are dropped rather than allowed to block the broadcast path.
type Hub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
	logger  *applogger.Logger
}

type wsClient struct {
	conn *websocket.Conn
	send chan BookingEvent
}

func NewHub(l *applogger.Logger) *Hub {
	return &Hub{
		clients: make(map[*wsClient]struct{}),
		logger:  l.With("booking_stream"),
	}
}

// Broadcast queues an event for every connected client.
func (h *Hub) Broadcast(ev BookingEvent) {
	ev.SentAt = time.Now().UTC()
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn("dropping slow websocket client")
		}
	}
}

// Close disconnects all clients and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) add(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	HandshakeTimeout: 10 * time.Second,
}

// BookingStream serves GET /ws/bookings: a live feed of booking creations and
// status changes.
func (h *Handler) BookingStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &wsClient{conn: conn, send: make(chan BookingEvent, wsSendBuffer)}
	if !h.hub.add(client) {
		conn.Close()
		return nil
	}

	go h.hub.writeLoop(client)
	h.hub.readLoop(client)
	return nil
}

func (h *Hub) writeLoop(c *wsClient) {
	defer c.conn.Close()
	for ev := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := c.conn.WriteJSON(ev); err != nil {
			h.logger.Debug("websocket write failed", applogger.Error(err))
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
}

// readLoop drains the connection so pings are answered and closes are seen.
func (h *Hub) readLoop(c *wsClient) {
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
