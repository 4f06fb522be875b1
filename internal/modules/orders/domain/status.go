package domain

import "pizzaUnlimitedApi/internal/shared/transition"

// Status represents the kitchen lifecycle of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Transitions is the single source of truth for order status moves. Completed
// and Cancelled are terminal.
var Transitions = transition.NewTable(map[Status][]Status{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
}, StatusCompleted, StatusCancelled)
