package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"pizzaUnlimitedApi/internal/modules/realtime/domain"
	"pizzaUnlimitedApi/internal/platform/events"
)

// Hub fans broadcasted messages out to connected dashboard clients. Clients
// either follow specific topics or receive everything.
type Hub struct {
	topics map[string]map[*Client]struct{}
	global map[*Client]struct{}
	mu     sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*Client]struct{}),
		global: make(map[*Client]struct{}),
	}
}

// Publish adapts domain events onto the broadcast path so the hub can sit
// behind the same fanout as the message broker.
func (h *Hub) Publish(ctx context.Context, event events.Event) {
	h.Broadcast(ctx, &domain.Message{
		Topic:     event.Topic(),
		Data:      event.Data,
		Timestamp: event.Timestamp,
	})
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
	slog.Debug("ws client unsubscribed", slog.String("topic", topic))
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
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if c.receiveAll {
		delete(h.global, c)
	}
	c.close()
	slog.Info("ws client detached")
}

func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	seen := make(map[*Client]struct{})
	clients := []*Client{}
	collect := func(subs map[*Client]struct{}) {
		for c := range subs {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			clients = append(clients, c)
		}
	}
	collect(h.topics[msg.Topic])
	// Subscribing to the bare entity ("orders") follows every action under it.
	if entity, _, ok := strings.Cut(msg.Topic, "."); ok {
		collect(h.topics[entity])
	}
	collect(h.global)
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			// Slow consumers are dropped rather than blocking the broadcast.
			go h.detachClient(c)
		}
	}
}

// AttachClient registers the client on the given topics; with no topics the
// client becomes a global subscriber receiving every broadcast.
func (h *Hub) AttachClient(c *Client, topics []string) {
	cleaned := topics[:0]
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		c.receiveAll = true
		h.mu.Lock()
		h.global[c] = struct{}{}
		h.mu.Unlock()
		slog.Info("ws client attached to all topics")
		return
	}
	for _, topic := range cleaned {
		h.subscribe(c, topic)
	}
	slog.Info("ws client attached", slog.Any("topics", cleaned))
}
