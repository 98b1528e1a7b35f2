package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotalAmount(t *testing.T) {
	order := &Order{
		ShippingFee: 15000,
		Items: []OrderItem{
			{Price: 35000, Quantity: 2},
			{Price: 10000, Quantity: 1},
		},
	}

	assert.Equal(t, 95000.0, order.TotalAmount())

	empty := &Order{ShippingFee: 5000}
	assert.Equal(t, 5000.0, empty.TotalAmount())
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivering, false},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusConfirmed, OrderStatusDelivering, true},
		{OrderStatusConfirmed, OrderStatusCancelled, false},
		{OrderStatusDelivering, OrderStatusCompleted, true},
		{OrderStatusDelivering, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		order := &Order{Status: tc.from}
		assert.Equal(t, tc.allowed, order.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCartTotal(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Price: 25000, Quantity: 2},
			{Price: 12000, Quantity: 3},
		},
	}
	assert.Equal(t, 86000.0, cart.Total())
}
