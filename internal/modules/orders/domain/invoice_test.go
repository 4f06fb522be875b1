package domain

import (
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildInvoice(t *testing.T) {
	pizza := primitive.NewObjectID()
	cola := primitive.NewObjectID()
	order := &Order{
		ID:     primitive.NewObjectID(),
		UserID: "u1",
		Items: []LineItem{
			{ItemID: pizza, Quantity: 2},
			{ItemID: cola, Quantity: 3},
		},
	}
	items := map[primitive.ObjectID]ResolvedItem{
		pizza: {Name: "Margherita", Price: 250},
		cola:  {Name: "Cola", Price: 50},
	}

	invoice, err := BuildInvoice(order, items, "shop@upi", "PizzaUnlimited")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(invoice.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(invoice.Lines))
	}
	if invoice.Lines[0].LineTotal != 500 || invoice.Lines[1].LineTotal != 150 {
		t.Fatalf("line totals wrong: %+v", invoice.Lines)
	}
	if invoice.Subtotal != 650 {
		t.Fatalf("expected subtotal 650, got %v", invoice.Subtotal)
	}
	if invoice.GST != 117 {
		t.Fatalf("expected GST 117, got %v", invoice.GST)
	}
	if invoice.ServiceFee != 20 {
		t.Fatalf("expected service fee 20, got %v", invoice.ServiceFee)
	}
	if invoice.Total != 787 {
		t.Fatalf("expected total 787, got %v", invoice.Total)
	}
	if !strings.HasPrefix(invoice.PaymentURI, "upi://pay?") ||
		!strings.Contains(invoice.PaymentURI, "pa=shop%40upi") ||
		!strings.Contains(invoice.PaymentURI, "am=787.00") {
		t.Fatalf("payment uri wrong: %s", invoice.PaymentURI)
	}
}

func TestBuildInvoiceUnresolvedItem(t *testing.T) {
	order := &Order{
		ID:     primitive.NewObjectID(),
		UserID: "u1",
		Items:  []LineItem{{ItemID: primitive.NewObjectID(), Quantity: 1}},
	}
	_, err := BuildInvoice(order, nil, "shop@upi", "PizzaUnlimited")
	if !errors.Is(err, ErrItemUnresolved) {
		t.Fatalf("expected ErrItemUnresolved, got %v", err)
	}
}
