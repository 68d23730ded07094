package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusPacked, true},
		{OrderStatusPacked, OrderStatusDispatched, true},
		{OrderStatusDispatched, OrderStatusCancelled, false},
		{OrderStatusDispatched, OrderStatusOutForDeliver, true},
		{OrderStatusOutForDeliver, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusReturn, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusReturn, OrderStatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderItemFinalPrice(t *testing.T) {
	item := OrderItem{Amount: 1000, Quantity: 3, DiscountPercent: 15}
	assert.InDelta(t, 2550.0, item.FinalPrice(), 0.001)

	noDiscount := OrderItem{Amount: 499, Quantity: 2}
	assert.InDelta(t, 998.0, noDiscount.FinalPrice(), 0.001)
}
