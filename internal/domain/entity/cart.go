package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Cart.
const (
	CartActive    = "activo"
	CartAbandoned = "abandonado"
	CartConverted = "convertido"
)

// Límites de cantidad por línea de carrito.
const (
	CartItemMinQty = 1
	CartItemMaxQty = 99
)

// Cart carrito de compra de un usuario. Como máximo uno activo por usuario.
type Cart struct {
	ID        string
	UserID    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem línea del carrito; una por (carrito, producto).
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidCartQuantity indica si qty está dentro de los límites de una línea.
func ValidCartQuantity(qty int) bool {
	return qty >= CartItemMinQty && qty <= CartItemMaxQty
}

// Recalculate actualiza el subtotal a partir de cantidad y precio unitario.
func (i *CartItem) Recalculate() {
	i.Subtotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartItemDetail línea con los datos del producto para mostrar el carrito.
type CartItemDetail struct {
	CartItem
	ProductTitle  string
	ProductActive bool
	CurrentPrice  decimal.Decimal
	Condition     string
}
