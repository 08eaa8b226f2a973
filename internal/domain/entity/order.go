package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Order.
const (
	OrderPending   = "pendiente"
	OrderConfirmed = "confirmada"
	OrderShipped   = "enviada"
	OrderDelivered = "entregada"
	OrderCancelled = "cancelada"
)

// Order orden de compra creada a partir de un carrito.
type Order struct {
	ID              string
	UserID          string
	OrderedAt       time.Time
	Total           decimal.Decimal
	Status          string
	PaymentMethod   string
	ShippingAddress string
	Notes           string
	ReceiptNumber   string
}

// Cancellable indica si la orden aún puede cancelarse.
func (o *Order) Cancellable() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}

// Returnable indica si se pueden solicitar devoluciones sobre la orden.
func (o *Order) Returnable() bool {
	return o.Status == OrderShipped || o.Status == OrderDelivered
}

// CanTransitionTo valida los cambios de estado administrativos: solo pendiente a confirmada.
// Enviada y entregada las fija el ciclo del envío; la cancelación tiene su propio flujo.
func (o *Order) CanTransitionTo(next string) bool {
	return o.Status == OrderPending && next == OrderConfirmed
}

// ValidOrderStatus indica si s es un estado conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderLine línea inmutable de la orden con el precio de compra.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderLineDetail línea con título y marca del producto.
type OrderLineDetail struct {
	OrderLine
	ProductTitle string
	ProductBrand string
}
