package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("reservation belongs to another user")
	// ErrNotCancellable rejects customer self-cancellation once the restaurant
	// has confirmed the booking.
	ErrNotCancellable = errors.New("only pending reservations can be cancelled")
	// ErrStatusConflict reports a lost compare-and-set race on the status field.
	ErrStatusConflict = errors.New("reservation status changed concurrently")
)

// Reservation is a customer's table booking request.
type Reservation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	Name           string             `bson:"name" json:"name"`
	PeopleCount    int                `bson:"peopleCount" json:"peopleCount"`
	Date           time.Time          `bson:"date" json:"date"`
	Time           string             `bson:"time" json:"time"`
	SpecialRequest string             `bson:"specialRequest" json:"specialRequest"`
	Status         Status             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CancelByCustomer applies the customer cancellation policy: owner only, and
// only while the reservation is still Pending. The move itself goes through
// the shared transition table.
func (r *Reservation) CancelByCustomer(userID string) (Status, error) {
	if r.UserID != userID {
		return "", ErrNotOwner
	}
	if r.Status != StatusPending {
		return "", ErrNotCancellable
	}
	return Transitions.Apply(r.Status, StatusCancelled)
}
