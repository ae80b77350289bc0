package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TypeTableChanged = "table_changed"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event tells subscribers that a row in Table changed. Events with a nil
// OwnerID go to every client.
type Event struct {
	Type    string      `json:"type"`
	Table   string      `json:"table"`
	Action  string      `json:"action"`
	ID      uuid.UUID   `json:"id"`
	OwnerID uuid.UUID   `json:"owner_id"`
	Data    interface{} `json:"data,omitempty"`
	At      time.Time   `json:"at"`
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one subscribed connection.
type Client struct {
	Conn    Conn
	OwnerID uuid.UUID
}

type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Event
	done       chan struct{}
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Event, 64),
		done:       make(chan struct{}),
	}
}

// Publish queues ev without blocking the writer that produced it.
func (h *Hub) Publish(ev Event) {
	if ev.Type == "" {
		ev.Type = TypeTableChanged
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	select {
	case h.Broadcast <- ev:
	case <-h.done:
	default:
		go func() {
			select {
			case h.Broadcast <- ev:
			case <-h.done:
			}
		}()
	}
}

// Join registers c. It reports false once the hub has stopped.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters c. After the hub has stopped it only closes the
// connection, so callers never block on shutdown.
func (h *Hub) Leave(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
		c.Conn.Close()
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.Clients {
				client.Conn.Close()
				delete(h.Clients, client)
			}
			h.mutex.Unlock()
			return

		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client] = true
			h.mutex.Unlock()
			log.Debug().Str("owner_id", client.OwnerID.String()).Msg("New WS Client Connected")

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
			h.mutex.Unlock()

		case ev := <-h.Broadcast:
			msg, err := json.Marshal(ev)
			if err != nil {
				log.Error().Err(err).Str("table", ev.Table).Msg("Failed to encode ws event")
				continue
			}
			h.mutex.Lock()
			for client := range h.Clients {
				if ev.OwnerID != uuid.Nil && client.OwnerID != ev.OwnerID {
					continue
				}
				if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					client.Conn.Close()
					delete(h.Clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}
