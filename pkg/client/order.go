package client

import (
	"context"
	"errors"
	"html/template"
	"io"
	"time"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrPhoneTooShort        = errors.New("customer phone must be at least 10 digits")
	ErrAddressRequired      = errors.New("customer address is required for delivery")
)

// CustomerInfo is the checkout payload. OrderMode is one of delivery,
// pickup or print; PaymentMode one of cash, card, upi or credit.
type CustomerInfo struct {
	Name        string `json:"customer_name"`
	Phone       string `json:"customer_phone"`
	Address     string `json:"customer_address"`
	OrderMode   string `json:"order_mode"`
	PaymentMode string `json:"payment_mode"`
}

func (info CustomerInfo) validate() error {
	if info.Name == "" {
		return ErrCustomerNameRequired
	}
	if len(info.Phone) < 10 {
		return ErrPhoneTooShort
	}
	if info.OrderMode == "delivery" && info.Address == "" {
		return ErrAddressRequired
	}
	return nil
}

// CreateOrderFromBill flushes pending bill edits, validates the
// customer details locally and places the order. The server freezes
// prices and empties the bill atomically; on any failure the bill is
// left untouched and the shadow refetched.
func (s *BillSync) CreateOrderFromBill(ctx context.Context, info CustomerInfo) (*Order, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}
	s.Flush()

	order, err := s.client.CreateOrder(ctx, info)
	if err != nil {
		s.Refresh(ctx)
		return nil, err
	}

	s.mu.Lock()
	s.resetLocked(nil)
	s.mu.Unlock()
	s.notifyChange()
	return order, nil
}

type receiptLine struct {
	OrderItem
	FinalAmount float64
}

type receiptData struct {
	Order         *Order
	Lines         []receiptLine
	Subtotal      float64
	TotalDiscount float64
	FinalTotal    float64
	PrintedAt     time.Time
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><title>Order #{{.Order.OrderNumber}}</title></head>
<body>
<h1>Order #{{.Order.OrderNumber}}</h1>
<p>{{.Order.CustomerName}} &middot; {{.Order.CustomerPhone}}</p>
{{if .Order.CustomerAddress}}<p>{{.Order.CustomerAddress}}</p>{{end}}
<p>{{.Order.OrderMode}} / {{.Order.PaymentMode}} &middot; {{.PrintedAt.Format "02 Jan 2006 15:04"}}</p>
<table>
<tr><th>Item</th><th>Qty</th><th>Price</th><th>Disc%</th><th>Amount</th></tr>
{{range .Lines}}<tr><td>{{.ProductName}}{{if .Color}} ({{.Color}}){{end}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Amount}}</td><td>{{printf "%.1f" .DiscountPercent}}</td><td>{{printf "%.2f" .FinalAmount}}</td></tr>
{{end}}</table>
<p>Subtotal: {{printf "%.2f" .Subtotal}}</p>
<p>Discount: {{printf "%.2f" .TotalDiscount}}</p>
<p><strong>Final Total: {{printf "%.2f" .FinalTotal}}</strong></p>
</body>
</html>
`))

// ReceiptTotals recomputes the money columns from the order lines as
// returned by the server, never from local bill state.
func ReceiptTotals(order *Order) (subtotal, discount, finalTotal float64) {
	for _, item := range order.Items {
		gross := item.Amount * float64(item.Quantity)
		net := gross * (1 - item.DiscountPercent/100)
		subtotal += gross
		discount += gross - net
		finalTotal += net
	}
	return subtotal, discount, finalTotal
}

// RenderReceipt writes the printable receipt for a placed order.
func RenderReceipt(w io.Writer, order *Order) error {
	subtotal, discount, finalTotal := ReceiptTotals(order)
	data := receiptData{
		Order:         order,
		Lines:         make([]receiptLine, 0, len(order.Items)),
		Subtotal:      subtotal,
		TotalDiscount: discount,
		FinalTotal:    finalTotal,
		PrintedAt:     time.Now(),
	}
	for _, item := range order.Items {
		data.Lines = append(data.Lines, receiptLine{
			OrderItem:   item,
			FinalAmount: item.Amount * float64(item.Quantity) * (1 - item.DiscountPercent/100),
		})
	}
	return receiptTmpl.Execute(w, data)
}
