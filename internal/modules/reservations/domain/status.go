package domain

import "pizzaUnlimitedApi/internal/shared/transition"

// Status represents the booking lifecycle of a reservation.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Transitions is the single source of truth for reservation status moves.
// Completed and Cancelled are terminal.
var Transitions = transition.NewTable(map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}, StatusCompleted, StatusCancelled)
