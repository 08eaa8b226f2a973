package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest entrada para agregar un producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"producto_id" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"omitempty,min=1,max=99"`
}

// UpdateCartItemRequest nueva cantidad de una línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"cantidad" validate:"required,min=1,max=99"`
}

// CartResponse cabecera del carrito.
type CartResponse struct {
	ID        string    `json:"carrito_id"`
	UserID    string    `json:"usuario_id"`
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	ID            string          `json:"item_carrito_id"`
	CartID        string          `json:"carrito_id"`
	ProductID     string          `json:"producto_id"`
	ProductTitle  string          `json:"titulo,omitempty"`
	ProductActive *bool           `json:"producto_activo,omitempty"`
	Quantity      int             `json:"cantidad"`
	UnitPrice     decimal.Decimal `json:"precio_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// CartViewResponse carrito con líneas y totales.
type CartViewResponse struct {
	Cart       *CartResponse      `json:"carrito"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_precio"`
}
