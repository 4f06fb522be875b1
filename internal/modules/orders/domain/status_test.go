package domain

import (
	"errors"
	"testing"

	"pizzaUnlimitedApi/internal/shared/transition"
)

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current Status
		target  Status
		wantErr error
	}{
		{name: "pending to preparing", current: StatusPending, target: StatusPreparing},
		{name: "pending to cancelled", current: StatusPending, target: StatusCancelled},
		{name: "preparing to ready", current: StatusPreparing, target: StatusReady},
		{name: "preparing to cancelled", current: StatusPreparing, target: StatusCancelled},
		{name: "ready to completed", current: StatusReady, target: StatusCompleted},
		{name: "ready to cancelled", current: StatusReady, target: StatusCancelled},
		{name: "pending cannot skip to ready", current: StatusPending, target: StatusReady, wantErr: transition.ErrIllegalTransition},
		{name: "pending cannot skip to completed", current: StatusPending, target: StatusCompleted, wantErr: transition.ErrIllegalTransition},
		{name: "preparing cannot go back", current: StatusPreparing, target: StatusPending, wantErr: transition.ErrIllegalTransition},
		{name: "completed is terminal", current: StatusCompleted, target: StatusCancelled, wantErr: transition.ErrTerminalState},
		{name: "cancelled is terminal", current: StatusCancelled, target: StatusPreparing, wantErr: transition.ErrTerminalState},
		{name: "unknown literal", current: StatusPending, target: "Deleted", wantErr: transition.ErrInvalidTarget},
		{name: "unknown literal on terminal", current: StatusCancelled, target: "Deleted", wantErr: transition.ErrInvalidTarget},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transitions.Apply(tc.current, tc.target)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.target {
				t.Fatalf("expected %q, got %q", tc.target, got)
			}
		})
	}
}

func TestCancelByCustomer(t *testing.T) {
	cases := []struct {
		name    string
		order   Order
		userID  string
		wantErr error
	}{
		{name: "owner cancels pending", order: Order{UserID: "u1", Status: StatusPending}, userID: "u1"},
		{name: "not the owner", order: Order{UserID: "u1", Status: StatusPending}, userID: "u2", wantErr: ErrNotOwner},
		{name: "preparing not cancellable", order: Order{UserID: "u1", Status: StatusPreparing}, userID: "u1", wantErr: ErrNotCancellable},
		{name: "ready not cancellable", order: Order{UserID: "u1", Status: StatusReady}, userID: "u1", wantErr: ErrNotCancellable},
		{name: "already cancelled", order: Order{UserID: "u1", Status: StatusCancelled}, userID: "u1", wantErr: ErrNotCancellable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.order.CancelByCustomer(tc.userID)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != StatusCancelled {
				t.Fatalf("expected Cancelled, got %q", got)
			}
		})
	}
}

func TestAdminMayCancelReadyOrder(t *testing.T) {
	// The customer policy is stricter than the table; the table itself allows it.
	got, err := Transitions.Apply(StatusReady, StatusCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusCancelled {
		t.Fatalf("expected Cancelled, got %q", got)
	}
}
