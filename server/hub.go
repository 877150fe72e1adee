package server

import (
	"encoding/json"
	"sync"

	"github.com/weedbox/casinotable"
	"go.uber.org/zap"
)

// Hub tracks live connections and implements casinotable.Publisher on top of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  *zap.Logger
}

var _ casinotable.Publisher = (*Hub)(nil)

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	h.logger.Debug("client registered", zap.String("conn_id", c.id), zap.Int("clients", len(h.clients)))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.logger.Debug("client unregistered", zap.String("conn_id", c.id), zap.Int("clients", len(h.clients)))
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Send(connID string, msg casinotable.OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode outbound message", zap.String("event", string(msg.Event)), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[connID]; ok {
		h.deliver(c, data)
	}
}

func (h *Hub) Broadcast(msg casinotable.OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode outbound message", zap.String("event", string(msg.Event)), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		h.deliver(c, data)
	}
}

// deliver drops messages for a client whose buffer is full. Callers hold the read lock.
func (h *Hub) deliver(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.logger.Warn("client send buffer full, closing", zap.String("conn_id", c.id))
		go c.conn.Close()
	}
}

// CloseAll disconnects every client, their read pumps report the disconnect.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		_ = c.conn.Close()
	}
}
