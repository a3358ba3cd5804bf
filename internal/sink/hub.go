package sink

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talgya/grand-line/internal/market"
)

// ErrHubClosed is returned by Publish after the hub shuts down.
var ErrHubClosed = errors.New("websocket hub closed")

const (
	clientSendBuffer = 64
	broadcastBuffer  = 256
	writeDeadline    = 5 * time.Second
)

// wsMessage is the wire format: per-tick price updates plus a full market
// payload on connect.
type wsMessage struct {
	Type       string                     `json:"type"`
	Character  *market.Update             `json:"character,omitempty"`
	Characters []market.CharacterSnapshot `json:"characters,omitempty"`
	MarketData *market.Meta               `json:"market_data,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts price updates to every connected WebSocket client. A slow
// client's backlog is dropped, never the tick. Register Hub.ServeWS on an
// HTTP mux to accept connections.
type Hub struct {
	snapshot func() market.Snapshot
	upgrader websocket.Upgrader

	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan []byte

	dropped atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewHub creates a running hub. snapshot provides the initial full-market
// payload sent to each new client.
func NewHub(snapshot func() market.Snapshot) *Hub {
	h := &Hub{
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Hub) run() {
	defer h.wg.Done()

	clients := make(map[*wsClient]bool)
	defer func() {
		for c := range clients {
			close(c.send)
			c.conn.Close()
		}
	}()

	for {
		select {
		case <-h.done:
			return
		case c := <-h.register:
			clients[c] = true
			if payload, err := h.initialPayload(); err == nil {
				c.send <- payload
			}
			slog.Info("websocket client connected", "clients", len(clients))
		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
				slog.Info("websocket client disconnected", "clients", len(clients))
			}
		case msg := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					h.dropped.Add(1)
				}
			}
		}
	}
}

func (h *Hub) initialPayload() ([]byte, error) {
	snap := h.snapshot()
	return json.Marshal(wsMessage{
		Type:       "market_data",
		Characters: snap.Characters,
		MarketData: &snap.Meta,
		Timestamp:  snap.TakenAt,
	})
}

// Publish queues one price update for broadcast. Overflow drops the update
// rather than stalling the price loop.
func (h *Hub) Publish(u market.Update) error {
	msg, err := json.Marshal(wsMessage{
		Type:      "price_update",
		Character: &u,
		Timestamp: u.Timestamp,
	})
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- msg:
		return nil
	default:
		h.dropped.Add(1)
		return nil
	}
}

// Close disconnects every client and stops the hub.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
	})
	h.wg.Wait()
	return nil
}

// Dropped returns how many messages were discarded for slow clients or a
// full broadcast queue.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// ServeWS upgrades an HTTP request to a WebSocket subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, clientSendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// writePump drains the client's send queue onto the connection.
func (h *Hub) writePump(c *wsClient) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; the stream is one-way. It exists to
// notice the client hanging up.
func (h *Hub) readPump(c *wsClient) {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			select {
			case h.unregister <- c:
			case <-h.done:
			}
			return
		}
	}
}
