package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
		OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped: {OrderStatusDelivered},
	}

	all := []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

	// Every (from, to) pair not in the table must be rejected.
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "transition %s -> %s", from, to)
		}
	}
}

func TestOrderStatus_TerminalStatesHaveNoExits(t *testing.T) {
	all := []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}
	for _, to := range all {
		assert.False(t, OrderStatusDelivered.CanTransitionTo(to))
		assert.False(t, OrderStatusCancelled.CanTransitionTo(to))
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusDelivered))
	assert.False(t, ValidOrderStatus(OrderStatus("RETURNED")))
	assert.False(t, ValidOrderStatus(OrderStatus("")))
}

func TestOrderItem_IsExtension(t *testing.T) {
	item := OrderItem{}
	assert.False(t, item.IsExtension())

	contractID := int64(7)
	item.ExtendedContractID = &contractID
	assert.True(t, item.IsExtension())
}
