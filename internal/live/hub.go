// Package live pushes ranking snapshots to connected WebSocket clients.
package live

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/trackday/internal/config"
	"github.com/yourusername/trackday/internal/metrics"
	"github.com/yourusername/trackday/internal/models"
)

// rankingsMessage is the wire frame sent to every client
type rankingsMessage struct {
	Type     string           `json:"type"`
	SentAt   time.Time        `json:"sent_at"`
	Rankings []models.Ranking `json:"rankings"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans ranking snapshots out to WebSocket subscribers. Broadcasts
// are rate limited as a whole; a client whose send buffer fills up is
// dropped rather than allowed to stall the others.
type Hub struct {
	cfg      config.LiveConfig
	logger   *logrus.Logger
	upgrader websocket.Upgrader
	limiter  *rate.Limiter

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub from the live push configuration
func NewHub(cfg config.LiveConfig, logger *logrus.Logger) *Hub {
	return &Hub{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.MessagesPerSecond), cfg.MessageBurst),
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade live connection")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, h.cfg.ClientBufferMessages),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.UpdateLiveClients(float64(count))
	h.logger.WithFields(logrus.Fields{
		"remote_addr": r.RemoteAddr,
		"clients":     count,
	}).Info("Live client connected")

	go h.writeLoop(c)
	go h.readLoop(c)
}

// BroadcastRankings queues a ranking snapshot for every connected
// client. It satisfies the broadcaster hook of the ranking service.
func (h *Hub) BroadcastRankings(rankings []models.Ranking) {
	if !h.limiter.Allow() {
		h.logger.Debug("Ranking broadcast dropped by rate limiter")
		return
	}

	payload, err := json.Marshal(rankingsMessage{
		Type:     "rankings",
		SentAt:   time.Now().UTC(),
		Rankings: rankings,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode ranking broadcast")
		return
	}

	// Sends happen under the read lock so a concurrent removal cannot
	// close a channel mid-send; the buffered send never blocks.
	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow live client")
		h.removeClient(c)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every connection and stops accepting new ones
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
	metrics.UpdateLiveClients(0)

	return ctx.Err()
}

func (h *Hub) writeLoop(c *client) {
	writeTimeout := time.Duration(h.cfg.WriteTimeoutSeconds) * time.Second

	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.WithError(err).Debug("Live client write failed")
			h.removeClient(c)
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
	c.conn.Close()
}

// readLoop drains client frames so pings and close handshakes are
// processed. Clients never send application data.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.removeClient(c)
			return
		}
	}
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()

	close(c.send)
	c.conn.Close()
	metrics.UpdateLiveClients(float64(count))
}
