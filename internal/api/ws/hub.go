package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/auth"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/observability"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a connected WebSocket client. Each client only receives
// alerts for its own account.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// Hub maintains active WebSocket clients and pushes live detection alerts.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			observability.WSConnections.Inc()
			slog.Debug("ws client connected", "user", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			observability.WSConnections.Dec()
			slog.Debug("ws client disconnected")

		case message := <-h.broadcast:
			var alert dto.AlertMessage
			if err := json.Unmarshal(message, &alert); err != nil {
				continue
			}
			owner := alert.UserID.String()

			h.mu.RLock()
			for client := range h.clients {
				if client.userID != owner {
					continue
				}
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop it.
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastAlert queues an alert for delivery to the owning account's
// clients.
func (h *Hub) BroadcastAlert(alert *dto.AlertMessage) {
	payload, err := json.Marshal(alert)
	if err != nil {
		slog.Error("marshal alert", "error", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		slog.Warn("alert broadcast queue full, dropping alert")
	}
}

// HandleWS upgrades the connection. The route sits behind the auth
// middleware, so the subject identifies which account's alerts to stream.
func (h *Hub) HandleWS(c *gin.Context) {
	subject, ok := auth.SubjectFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing subject"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: subject.UserID.String(),
	}
	h.register <- client

	go client.writeLoop()
	go client.readLoop(h)
}

func (c *Client) writeLoop() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (c *Client) readLoop(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
