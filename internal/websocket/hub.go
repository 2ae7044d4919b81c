package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 64
	eventBuffer  = 256
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxReadBytes = 512
)

// Client is one websocket connection of a signed-in user
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

// NewClient wraps conn for userID
func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		UserID: userID,
	}
}

// Event is the envelope pushed to clients
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type delivery struct {
	userID uint
	data   []byte
}

// Hub keeps the live connections of every user and fans events out to them
type Hub struct {
	clients    map[uint]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	online     chan chan map[uint]int
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, eventBuffer),
		online:     make(chan chan map[uint]int),
		done:       make(chan struct{}),
	}
}

// Register adds c to the hub. After the hub stopped c is closed right away.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

// Unregister removes c and closes its send channel
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify queues event for every connection of userID. It never blocks:
// when the hub is backed up the event is dropped.
func (h *Hub) Notify(userID uint, event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	select {
	case h.deliver <- delivery{userID: userID, data: data}:
	default:
		log.Printf("WebSocket hub busy, dropped %s event for user %d", event, userID)
	}
}

// Connections returns the number of live connections per user
func (h *Hub) Connections(ctx context.Context) map[uint]int {
	reply := make(chan map[uint]int, 1)
	select {
	case h.online <- reply:
	case <-h.done:
		return nil
	case <-ctx.Done():
		return nil
	}
	select {
	case counts := <-reply:
		return counts
	case <-ctx.Done():
		return nil
	}
}

// Run serves the hub until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for _, set := range h.clients {
				for c := range set {
					close(c.Send)
				}
			}
			h.clients = make(map[uint]map[*Client]struct{})
			return

		case c := <-h.register:
			set, ok := h.clients[c.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.UserID] = set
			}
			set[c] = struct{}{}
			log.Printf("WebSocket client registered for user %d", c.UserID)

		case c := <-h.unregister:
			if h.remove(c) {
				log.Printf("WebSocket client unregistered for user %d", c.UserID)
			}

		case d := <-h.deliver:
			for c := range h.clients[d.userID] {
				select {
				case c.Send <- d.data:
				default:
					// slow consumer
					h.remove(c)
					log.Printf("Dropped slow websocket client of user %d", c.UserID)
				}
			}

		case reply := <-h.online:
			counts := make(map[uint]int, len(h.clients))
			for id, set := range h.clients {
				counts[id] = len(set)
			}
			reply <- counts
		}
	}
}

func (h *Hub) remove(c *Client) bool {
	set, ok := h.clients[c.UserID]
	if !ok {
		return false
	}
	if _, ok := set[c]; !ok {
		return false
	}
	delete(set, c)
	close(c.Send)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
	return true
}

// WritePump forwards queued events to the connection and keeps it alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump drains the connection until it closes, then unregisters the client.
// Clients only listen; anything they send is discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxReadBytes)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error for user %d: %v", c.UserID, err)
			}
			return
		}
	}
}
