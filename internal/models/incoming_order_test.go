package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPercentage(t *testing.T) {
	order := IncomingOrder{ProductDetails: []IncomingOrderItem{
		{Quantity: 10, MatchedQuantity: 5},
		{Quantity: 4, MatchedQuantity: 2},
	}}
	assert.InDelta(t, 50.0, order.MatchPercentage(), 0.001)

	order.ProductDetails[0].MatchedQuantity = 10
	order.ProductDetails[1].MatchedQuantity = 4
	assert.InDelta(t, 100.0, order.MatchPercentage(), 0.001)
}

func TestMatchPercentageEmptyOrder(t *testing.T) {
	assert.Zero(t, IncomingOrder{}.MatchPercentage())
	assert.Zero(t, IncomingOrder{ProductDetails: []IncomingOrderItem{{Quantity: 0}}}.MatchPercentage())
}

func TestMatchPercentageIgnoresOverride(t *testing.T) {
	override := 85.0
	order := IncomingOrder{
		MatchOverride:  &override,
		ProductDetails: []IncomingOrderItem{{Quantity: 10, MatchedQuantity: 5}},
	}
	assert.InDelta(t, 50.0, order.MatchPercentage(), 0.001, "override lives next to the computed value, not inside it")
}
