package domain

import "time"

// Message is the envelope pushed to connected dashboard clients.
type Message struct {
	Topic     string    `json:"topic"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
