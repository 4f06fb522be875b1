package events

import (
	"context"
	"time"
)

// Entities and actions carried by domain events.
const (
	EntityOrders       = "orders"
	EntityReservations = "reservations"

	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Event is the envelope published on every order placement and every
// order/reservation status change.
type Event struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Topic returns the canonical "<entity>.<action>" topic for the event.
func (e Event) Topic() string {
	return e.Entity + "." + e.Action
}

// Publisher delivers domain events to interested sinks. Publishing is
// best-effort: sinks log their own failures and never block the request path
// beyond the write itself.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Fanout forwards each event to every configured sink.
type Fanout struct {
	sinks []Publisher
}

// NewFanout builds a Publisher over the non-nil sinks. An empty fanout is a
// valid no-op publisher.
func NewFanout(sinks ...Publisher) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	for _, s := range f.sinks {
		s.Publish(ctx, event)
	}
}
