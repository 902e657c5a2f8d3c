package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"bubble-server/metrics"
	"bubble-server/models"
	"bubble-server/reminders"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // socket connections are unauthenticated and open to any origin
	},
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBuffer     = 256
)

// Responder is the bot: it may answer any chat text sent on a connection.
type Responder interface {
	Respond(text, connID string) bool
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// inboundFrame keeps the payload raw until the type is known.
type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	reminders  *reminders.Store
	responder  Responder
	logger     *slog.Logger
	mu         sync.RWMutex
}

func NewHub(store *reminders.Store, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		done:       make(chan struct{}),
		reminders:  store,
		logger:     logger.With("component", "ws_hub"),
	}
}

// SetResponder wires the bot in after construction; the bot itself needs the
// hub as its broadcaster.
func (h *Hub) SetResponder(r Responder) {
	h.responder = r
}

// Run owns the client set until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.removeLocked(client)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()

			metrics.ConnectedClients.Inc()
			h.logger.Info("client registered", "connection_id", client.id, "clients", clientCount)

		case client := <-h.unregister:
			h.mu.Lock()
			_, wasPresent := h.clients[client]
			if wasPresent {
				h.removeLocked(client)
			} else {
				// Dropped as stale earlier; its read pump may have added
				// reminders since then.
				h.dropReminders(client.id)
			}
			clientCount := len(h.clients)
			h.mu.Unlock()

			if wasPresent {
				h.logger.Info("client unregistered", "connection_id", client.id, "clients", clientCount)
			}

		case message := <-h.broadcast:
			var staleClients []*Client
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					staleClients = append(staleClients, client)
				}
			}
			h.mu.RUnlock()

			if len(staleClients) > 0 {
				h.logger.Warn("dropping stale clients", "count", len(staleClients))
				metrics.BroadcastsDropped.Add(float64(len(staleClients)))
				h.mu.Lock()
				for _, client := range staleClients {
					if _, ok := h.clients[client]; ok {
						h.removeLocked(client)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

// removeLocked forgets client and everything it owns. Caller holds h.mu.
func (h *Hub) removeLocked(client *Client) {
	delete(h.clients, client)
	close(client.send)
	metrics.ConnectedClients.Dec()
	h.dropReminders(client.id)
}

func (h *Hub) dropReminders(connID string) {
	if n := h.reminders.RemoveAll(connID); n > 0 {
		metrics.RemindersDropped.Add(float64(n))
		h.logger.Info("discarded pending reminders", "connection_id", connID, "count", n)
	}
}

// Connected reports whether a client with connection id connID is registered.
func (h *Hub) Connected(connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.connectedLocked(connID)
}

func (h *Hub) connectedLocked(connID string) bool {
	for client := range h.clients {
		if client.id == connID {
			return true
		}
	}
	return false
}

// ScheduleReminder stores r for connID if that connection is registered. The
// check and the insert happen under h.mu, so a concurrent disconnect either
// sees the new reminder and removes it or the insert is refused.
func (h *Hub) ScheduleReminder(connID string, r models.Reminder) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.connectedLocked(connID) {
		return false
	}
	h.reminders.Add(connID, r)
	return true
}

// Broadcast sends event to every connected client. It never blocks once the
// hub has stopped.
func (h *Hub) Broadcast(event string, payload interface{}) {
	data, err := json.Marshal(models.WSMessage{Type: event, Payload: payload})
	if err != nil {
		h.logger.Error("broadcast marshal failed", "type", event, "err", err)
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleMessage echoes an inbound chat message to everyone and passes it to the bot.
func (h *Hub) HandleMessage(connID string, req models.SendMessageRequest) {
	metrics.MessagesReceived.Inc()

	sender := req.Sender
	if sender == "" {
		sender = models.SenderUser
	}
	h.Broadcast(models.WSTypeReceiveMessage, models.NewChatMessage(req.Text, sender))

	if h.responder != nil {
		h.responder.Respond(req.Text, connID)
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		id:   uuid.New().String(),
	}

	welcome, _ := json.Marshal(models.WSMessage{
		Type:    models.WSTypeWelcome,
		Payload: models.WelcomePayload{ConnectionID: client.id, Message: "connected"},
	})
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, welcome); err != nil {
		h.logger.Warn("welcome write failed", "connection_id", client.id, "err", err)
		conn.Close()
		return
	}

	// Registering before the pumps start guarantees the hub sees register
	// ahead of this client's unregister.
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("unexpected close", "connection_id", c.id, "err", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.hub.logger.Debug("unreadable frame", "connection_id", c.id, "err", err)
			continue
		}

		switch frame.Type {
		case models.WSTypeSendMessage:
			var req models.SendMessageRequest
			if err := json.Unmarshal(frame.Payload, &req); err != nil {
				c.hub.logger.Debug("bad send_message payload", "connection_id", c.id, "err", err)
				continue
			}
			if strings.TrimSpace(req.Text) == "" {
				continue
			}
			c.hub.HandleMessage(c.id, req)
		default:
			c.hub.logger.Debug("unknown frame type", "type", frame.Type, "connection_id", c.id)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("write failed", "connection_id", c.id, "err", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
