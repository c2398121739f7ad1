// Package hudfeed streams engine notifications to external HUD clients over
// WebSocket.
package hudfeed

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Events queued for the hub loop before Publish starts dropping.
	broadcastBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// HUD overlays are served from arbitrary local origins.
		return true
	},
}

// Client is one connected HUD.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts events to them.
// Publish never blocks, so it is safe to call from the game loop.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	count   atomic.Int32
	dropped atomic.Int64
	last    atomic.Pointer[Event]
}

// NewHub creates a hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is done, closing every
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				h.unregisterClient(c)
			}
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Publish queues ev for every client. When the queue is full the event is
// dropped and counted.
func (h *Hub) Publish(ev Event) {
	h.last.Store(&ev)
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[HUDFeed] failed to marshal event %s: %v", ev.Type, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.dropped.Add(1)
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int { return int(h.count.Load()) }

// Dropped returns how many events Publish discarded.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// Last returns the most recently published event.
func (h *Hub) Last() (Event, bool) {
	ev := h.last.Load()
	if ev == nil {
		return Event{}, false
	}
	return *ev, true
}

// ServeWS upgrades the request and attaches a new client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HUDFeed] websocket upgrade failed: %v", err)
		return
	}
	c := &Client{hub: h, conn: conn, send: make(chan []byte, 256)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) registerClient(c *Client) {
	h.clients[c] = true
	h.count.Store(int32(len(h.clients)))
	log.Printf("[HUDFeed] client connected (total clients: %d)", len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int32(len(h.clients)))
	log.Printf("[HUDFeed] client disconnected (remaining clients: %d)", len(h.clients))
}

func (h *Hub) broadcastMessage(msg []byte) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow client; drop it rather than stall the others.
			h.unregisterClient(c)
		}
	}
}

// readPump drains the connection so pongs and close frames are handled.
// HUD clients never send anything meaningful.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[HUDFeed] websocket error: %v", err)
			}
			return
		}
	}
}

// writePump sends queued events, one JSON object per WebSocket message.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
