package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOwner      = errors.New("order belongs to another user")
	// ErrNotCancellable rejects customer self-cancellation of an order that has
	// already left Pending. The kitchen owns the order from that point on.
	ErrNotCancellable = errors.New("only pending orders can be cancelled")
	// ErrStatusConflict reports a lost compare-and-set race: the persisted status
	// changed between the read and the conditional write.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// PaymentMethods lists the accepted payment method literals.
var PaymentMethods = map[string]struct{}{
	"Cash": {},
	"Card": {},
	"UPI":  {},
}

// LineItem is one (item reference, quantity) pair of an order.
type LineItem struct {
	ItemID   primitive.ObjectID `bson:"item" json:"item"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Order is a customer's placed order. Status is mutated only through the
// transition table; documents in a terminal status are immutable.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	Items         []LineItem         `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        Status             `bson:"status" json:"status"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	TableNumber   string             `bson:"tableNumber" json:"tableNumber"`
	CustomerPhone string             `bson:"customerPhone" json:"customerPhone"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	OrderNotes    string             `bson:"orderNotes" json:"orderNotes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// CancelByCustomer applies the customer cancellation policy: only the owner may
// cancel, and only while the order is still Pending. The final move still goes
// through the shared transition table so the rules cannot diverge from the
// admin path.
func (o *Order) CancelByCustomer(userID string) (Status, error) {
	if o.UserID != userID {
		return "", ErrNotOwner
	}
	if o.Status != StatusPending {
		return "", ErrNotCancellable
	}
	return Transitions.Apply(o.Status, StatusCancelled)
}
