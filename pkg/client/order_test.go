package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerInfoValidation(t *testing.T) {
	tests := []struct {
		name string
		info CustomerInfo
		want error
	}{
		{
			name: "missing name",
			info: CustomerInfo{Phone: "9876543210", OrderMode: "pickup"},
			want: ErrCustomerNameRequired,
		},
		{
			name: "short phone",
			info: CustomerInfo{Name: "Asha", Phone: "12345", OrderMode: "pickup"},
			want: ErrPhoneTooShort,
		},
		{
			name: "delivery without address",
			info: CustomerInfo{Name: "Asha", Phone: "9876543210", OrderMode: "delivery"},
			want: ErrAddressRequired,
		},
		{
			name: "pickup needs no address",
			info: CustomerInfo{Name: "Asha", Phone: "9876543210", OrderMode: "pickup"},
		},
		{
			name: "print needs no address",
			info: CustomerInfo{Name: "Asha", Phone: "9876543210", OrderMode: "print"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCreateOrderFromBillClearsShadow(t *testing.T) {
	srv := shirtBill()
	mux := srv.handler().(*http.ServeMux)
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		var info CustomerInfo
		json.NewDecoder(r.Body).Decode(&info)
		order := Order{
			ID:           7,
			OrderNumber:  1042,
			CustomerName: info.Name,
			Status:       "pending",
			Items: []OrderItem{
				{ProductID: 1, ProductName: "Oxford Shirt", Amount: 1499, Quantity: 2},
				{ProductID: 2, ProductName: "Chinos", Amount: 2199, Quantity: 1},
			},
		}
		srv.mu.Lock()
		srv.items = nil
		srv.mu.Unlock()
		writeEnvelope(w, http.StatusCreated, order, "order created")
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()
	bs := NewBillSync(New(ts.URL))
	defer bs.Close()
	require.NoError(t, bs.Refresh(context.Background()))

	order, err := bs.CreateOrderFromBill(context.Background(), CustomerInfo{
		Name: "Asha", Phone: "9876543210", OrderMode: "pickup", PaymentMode: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1042), order.OrderNumber)
	assert.Empty(t, bs.Items(), "bill shadow empties once the order is placed")
}

func TestCreateOrderFromBillLocalValidationSkipsRequest(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		writeEnvelope(w, http.StatusOK, nil, "")
	}))
	defer ts.Close()

	bs := NewBillSync(New(ts.URL))
	defer bs.Close()

	_, err := bs.CreateOrderFromBill(context.Background(), CustomerInfo{Phone: "9876543210"})
	assert.ErrorIs(t, err, ErrCustomerNameRequired)
	assert.False(t, called, "invalid info must never reach the server")
}

func TestReceiptTotals(t *testing.T) {
	order := &Order{
		OrderNumber: 55,
		Items: []OrderItem{
			{ProductName: "Oxford Shirt", Amount: 1499, Quantity: 2, DiscountPercent: 10},
			{ProductName: "Chinos", Amount: 2199, Quantity: 1},
			{ProductName: "Belt", Amount: 499, Quantity: 3, DiscountPercent: 25},
		},
	}

	subtotal, discount, finalTotal := ReceiptTotals(order)
	wantSubtotal := 1499*2 + 2199*1 + 499*3.0
	wantFinal := 1499*2*0.9 + 2199 + 499*3*0.75
	assert.InDelta(t, wantSubtotal, subtotal, 0.001)
	assert.InDelta(t, wantFinal, finalTotal, 0.001)
	assert.InDelta(t, wantSubtotal-wantFinal, discount, 0.001)
}

func TestRenderReceiptFinalTotalMatchesLines(t *testing.T) {
	order := &Order{
		OrderNumber:   1042,
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		OrderMode:     "pickup",
		PaymentMode:   "upi",
		Items: []OrderItem{
			{ProductName: "Oxford Shirt", Color: "blue", Amount: 1499, Quantity: 2, DiscountPercent: 10},
			{ProductName: "Chinos", Amount: 2199, Quantity: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReceipt(&buf, order))

	out := buf.String()
	_, _, finalTotal := ReceiptTotals(order)
	assert.Contains(t, out, "Order #1042")
	assert.Contains(t, out, "Oxford Shirt (blue)")
	assert.Contains(t, out, fmt.Sprintf("Final Total: %.2f", finalTotal))
	assert.True(t, strings.Contains(out, "Asha"))
}
