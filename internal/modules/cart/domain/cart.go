package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrItemNotInCart = errors.New("item not in cart")
)

// ResolvedItem carries the menu fields a cart view needs.
type ResolvedItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Line is one menu item with its accumulated quantity.
type Line struct {
	ItemID   primitive.ObjectID `bson:"item" json:"item"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Cart holds a customer's pending selection, at most one line per item.
//
// The mutators below are the reference statement of the cart rules. The Mongo
// repository enforces the same rules with single-document update operators
// ($inc on a matched line, $push for a new one, positional $set, $pull);
// changes to either side must be mirrored in the other.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []Line             `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddLine merges quantity into an existing line or appends a new one.
func (c *Cart) AddLine(itemID primitive.ObjectID, quantity int) {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, Line{ItemID: itemID, Quantity: quantity})
}

// SetLineQuantity overwrites a line's quantity; zero or less removes the line.
func (c *Cart) SetLineQuantity(itemID primitive.ObjectID, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ItemID != itemID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return nil
	}
	return ErrItemNotInCart
}

// RemoveLine drops the line if present; removing an absent item is a no-op.
func (c *Cart) RemoveLine(itemID primitive.ObjectID) {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// DistinctCount is the number of lines, not the summed quantities.
func (c *Cart) DistinctCount() int {
	return len(c.Items)
}
