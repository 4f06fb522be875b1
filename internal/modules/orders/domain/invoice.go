package domain

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrItemUnresolved reports an order line whose menu item no longer exists.
var ErrItemUnresolved = errors.New("order references an unknown menu item")

const (
	gstRate    = 0.18
	serviceFee = 20.0
)

// ResolvedItem is the menu data an invoice needs for one referenced item.
type ResolvedItem struct {
	Name  string
	Price float64
}

// InvoiceLine is one priced row of the invoice.
type InvoiceLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Invoice is the computed billing document for an order. Rendering (PDF, QR)
// is left to the caller; this is the data only.
type Invoice struct {
	OrderID    string        `json:"orderId"`
	Customer   string        `json:"customer"`
	IssuedFor  time.Time     `json:"issuedFor"`
	Lines      []InvoiceLine `json:"lines"`
	Subtotal   float64       `json:"subtotal"`
	GST        float64       `json:"gst"`
	ServiceFee float64       `json:"serviceFee"`
	Total      float64       `json:"total"`
	PaymentURI string        `json:"paymentUri"`
}

// BuildInvoice prices each order line against the resolved menu items and
// computes subtotal, 18% GST, the flat service fee, and the UPI payment URI.
func BuildInvoice(order *Order, items map[primitive.ObjectID]ResolvedItem, upiAddress, payeeName string) (*Invoice, error) {
	lines := make([]InvoiceLine, 0, len(order.Items))
	var subtotal float64
	for _, line := range order.Items {
		item, ok := items[line.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrItemUnresolved, line.ItemID.Hex())
		}
		lineTotal := item.Price * float64(line.Quantity)
		lines = append(lines, InvoiceLine{
			Name:      item.Name,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
			LineTotal: lineTotal,
		})
		subtotal += lineTotal
	}

	gst := round2(subtotal * gstRate)
	total := round2(subtotal + gst + serviceFee)

	return &Invoice{
		OrderID:    order.ID.Hex(),
		Customer:   order.UserID,
		IssuedFor:  order.CreatedAt,
		Lines:      lines,
		Subtotal:   subtotal,
		GST:        gst,
		ServiceFee: serviceFee,
		Total:      total,
		PaymentURI: upiPayURI(upiAddress, payeeName, total),
	}, nil
}

func upiPayURI(address, payee string, amount float64) string {
	params := url.Values{}
	params.Set("pa", address)
	params.Set("pn", payee)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	return "upi://pay?" + params.Encode()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
