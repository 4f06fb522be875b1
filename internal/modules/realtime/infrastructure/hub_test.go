package infrastructure

import (
	"context"
	"encoding/json"
	"testing"

	"pizzaUnlimitedApi/internal/modules/realtime/domain"
	"pizzaUnlimitedApi/internal/platform/events"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:        hub,
		send:       make(chan []byte, 8),
		subscribed: make(map[string]struct{}),
	}
}

func receivedTopic(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case data := <-c.send:
		var msg domain.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		return msg.Topic
	default:
		return ""
	}
}

func TestBroadcastRoutesByTopic(t *testing.T) {
	hub := NewHub()
	orders := newTestClient(hub)
	reservations := newTestClient(hub)
	hub.AttachClient(orders, []string{"orders.updated"})
	hub.AttachClient(reservations, []string{"reservations.updated"})

	hub.Broadcast(context.Background(), &domain.Message{Topic: "orders.updated"})

	if got := receivedTopic(t, orders); got != "orders.updated" {
		t.Fatalf("subscriber missed its topic, got %q", got)
	}
	if got := receivedTopic(t, reservations); got != "" {
		t.Fatalf("unrelated subscriber received %q", got)
	}
}

func TestEntitySubscriptionCoversAllActions(t *testing.T) {
	hub := NewHub()
	orders := newTestClient(hub)
	hub.AttachClient(orders, []string{"orders"})

	hub.Broadcast(context.Background(), &domain.Message{Topic: "orders.created"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "orders.updated"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "reservations.updated"})

	if got := receivedTopic(t, orders); got != "orders.created" {
		t.Fatalf("expected orders.created, got %q", got)
	}
	if got := receivedTopic(t, orders); got != "orders.updated" {
		t.Fatalf("expected orders.updated, got %q", got)
	}
	if got := receivedTopic(t, orders); got != "" {
		t.Fatalf("entity subscriber received another entity's event %q", got)
	}
}

func TestGlobalSubscriberReceivesEverything(t *testing.T) {
	hub := NewHub()
	global := newTestClient(hub)
	hub.AttachClient(global, nil)

	hub.Broadcast(context.Background(), &domain.Message{Topic: "orders.created"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "reservations.updated"})

	if got := receivedTopic(t, global); got != "orders.created" {
		t.Fatalf("expected orders.created, got %q", got)
	}
	if got := receivedTopic(t, global); got != "reservations.updated" {
		t.Fatalf("expected reservations.updated, got %q", got)
	}
}

func TestPublishAdaptsEvents(t *testing.T) {
	hub := NewHub()
	global := newTestClient(hub)
	hub.AttachClient(global, nil)

	hub.Publish(context.Background(), events.Event{
		Entity: events.EntityOrders,
		Action: events.ActionUpdated,
	})

	if got := receivedTopic(t, global); got != "orders.updated" {
		t.Fatalf("expected orders.updated, got %q", got)
	}
}
