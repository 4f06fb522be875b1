package domain

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddLineMergesQuantity(t *testing.T) {
	pizza := primitive.NewObjectID()
	cart := &Cart{}

	cart.AddLine(pizza, 2)
	cart.AddLine(pizza, 3)

	if len(cart.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
}

func TestAddLineKeepsDistinctItems(t *testing.T) {
	cart := &Cart{}
	cart.AddLine(primitive.NewObjectID(), 1)
	cart.AddLine(primitive.NewObjectID(), 1)

	if cart.DistinctCount() != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", cart.DistinctCount())
	}
	if cart.Items[0].ItemID == cart.Items[1].ItemID {
		t.Fatalf("lines must not share an item ID")
	}
}

func TestSetLineQuantity(t *testing.T) {
	pizza := primitive.NewObjectID()
	soda := primitive.NewObjectID()
	cart := &Cart{}
	cart.AddLine(pizza, 2)
	cart.AddLine(soda, 1)

	if err := cart.SetLineQuantity(pizza, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", cart.Items[0].Quantity)
	}

	// Zero removes the line and the distinct count drops with it.
	if err := cart.SetLineQuantity(pizza, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.DistinctCount() != 1 {
		t.Fatalf("expected 1 line after removal, got %d", cart.DistinctCount())
	}

	if err := cart.SetLineQuantity(pizza, 3); !errors.Is(err, ErrItemNotInCart) {
		t.Fatalf("expected ErrItemNotInCart, got %v", err)
	}
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	pizza := primitive.NewObjectID()
	cart := &Cart{}
	cart.AddLine(pizza, 2)

	cart.RemoveLine(pizza)
	cart.RemoveLine(pizza)

	if cart.DistinctCount() != 0 {
		t.Fatalf("expected empty cart, got %d lines", cart.DistinctCount())
	}
}
