package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"bookingHub/internal/modules/realtime/domain"
)

type Hub struct {
	topics  map[string]map[*Client]struct{}
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	slog.Info("ws client registered", slog.String("clientId", c.id), slog.String("reservationCode", c.code))
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.subscribed, topic)
	slog.Debug("ws client unsubscribed", slog.String("clientId", c.id), slog.String("topic", topic))
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	delete(h.clients, c.id)
	c.close()
	slog.Info("ws client detached", slog.String("clientId", c.id))
}

// Broadcast sends msg to every client subscribed to its topic. Clients bound
// to a reservation code only receive messages carrying that code. A client
// whose send buffer is full is dropped.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	targetCode := ""
	if msg.Metadata != nil {
		targetCode = strings.TrimSpace(msg.Metadata[domain.MetadataReservationCode])
	}

	// detach needs the write lock, so no send channel closes while offering
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.topics[msg.Topic] {
		if c.code != "" && c.code != targetCode {
			continue
		}
		h.offerLocked(c, data)
	}
}

// deliver queues data for a single attached client.
func (h *Hub) deliver(c *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	h.offerLocked(c, data)
}

// offerLocked must run under h.mu. A full buffer schedules the client's removal.
func (h *Hub) offerLocked(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		slog.Warn("ws client too slow, dropping", slog.String("clientId", c.id))
		go h.detachClient(c)
	}
}

// AttachClient registers c and subscribes it to topics.
func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
		}
	}
	slog.Info("ws client attached", slog.String("clientId", c.id), slog.Any("topics", topics))
}

// ClientCount returns the number of attached clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close detaches every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		h.detachLocked(c)
	}
}
