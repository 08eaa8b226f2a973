package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_Cancellable(t *testing.T) {
	cases := map[string]bool{
		OrderPending:   true,
		OrderConfirmed: true,
		OrderShipped:   false,
		OrderDelivered: false,
		OrderCancelled: false,
	}
	for status, want := range cases {
		o := Order{Status: status}
		assert.Equal(t, want, o.Cancellable(), status)
	}
}

func TestOrder_CanTransitionTo(t *testing.T) {
	o := Order{Status: OrderPending}
	assert.True(t, o.CanTransitionTo(OrderConfirmed))
	assert.False(t, o.CanTransitionTo(OrderShipped))
	assert.False(t, o.CanTransitionTo(OrderCancelled), "cancelar usa su propio flujo")

	o.Status = OrderConfirmed
	assert.False(t, o.CanTransitionTo(OrderShipped), "enviada solo al crear el envío")

	o.Status = OrderShipped
	assert.False(t, o.CanTransitionTo(OrderDelivered), "entregada solo al entregar el envío")

	o.Status = OrderCancelled
	assert.False(t, o.CanTransitionTo(OrderConfirmed))
}

func TestCartItem_Recalculate(t *testing.T) {
	it := CartItem{Quantity: 3, UnitPrice: decimal.RequireFromString("19.90")}
	it.Recalculate()
	assert.True(t, decimal.RequireFromString("59.70").Equal(it.Subtotal))
}

func TestValidCartQuantity(t *testing.T) {
	assert.False(t, ValidCartQuantity(0))
	assert.True(t, ValidCartQuantity(1))
	assert.True(t, ValidCartQuantity(99))
	assert.False(t, ValidCartQuantity(100))
}

func TestInventory_CanFulfill(t *testing.T) {
	inv := &Inventory{Available: 2}
	assert.True(t, inv.CanFulfill(2))
	assert.False(t, inv.CanFulfill(3))
	assert.False(t, inv.CanFulfill(0))

	var missing *Inventory
	assert.False(t, missing.CanFulfill(1))
}
