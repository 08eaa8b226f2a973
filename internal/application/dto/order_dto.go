package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest entrada de POST /ordenes/checkout.
type CheckoutRequest struct {
	ShippingAddress string `json:"direccion_envio" validate:"required,max=500"`
	PaymentMethod   string `json:"metodo_pago" validate:"required,max=50"`
	Notes           string `json:"notas" validate:"omitempty,max=1000"`
}

// CancelOrderRequest entrada de PUT /ordenes/:id/cancelar.
type CancelOrderRequest struct {
	Reason string `json:"motivo" validate:"omitempty,max=500"`
}

// UpdateOrderStatusRequest cambio de estado administrativo.
type UpdateOrderStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=confirmada enviada entregada"`
}

// OrderListRequest filtros del listado de órdenes.
type OrderListRequest struct {
	PageRequest
	Status string `query:"estado"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID              string          `json:"orden_id"`
	UserID          string          `json:"usuario_id"`
	OrderedAt       time.Time       `json:"fecha_orden"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"estado"`
	PaymentMethod   string          `json:"metodo_pago"`
	ShippingAddress string          `json:"direccion_envio"`
	Notes           string          `json:"notas,omitempty"`
	ReceiptNumber   string          `json:"comprobante_pago"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID              string          `json:"pago_id"`
	OrderID         string          `json:"orden_id"`
	Amount          decimal.Decimal `json:"monto"`
	Method          string          `json:"metodo"`
	PaidAt          time.Time       `json:"fecha"`
	Status          string          `json:"estado"`
	TransactionCode string          `json:"codigo_transaccion"`
}

// CheckoutResponse data de un checkout exitoso.
type CheckoutResponse struct {
	Order      OrderResponse   `json:"orden"`
	Payment    PaymentResponse `json:"pago"`
	ItemsCount int             `json:"items_count"`
}

// OrderLineResponse línea de la orden.
type OrderLineResponse struct {
	ID           string          `json:"item_orden_id"`
	ProductID    string          `json:"producto_id"`
	ProductTitle string          `json:"titulo,omitempty"`
	ProductBrand string          `json:"marca,omitempty"`
	Quantity     int             `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderSummary resumen de cantidades.
type OrderSummary struct {
	TotalItems    int `json:"total_items"`
	TotalProducts int `json:"cantidad_productos"`
}

// OrderDetailResponse orden con líneas, pago y resumen.
type OrderDetailResponse struct {
	Order   OrderResponse       `json:"orden"`
	Items   []OrderLineResponse `json:"items"`
	Payment *PaymentResponse    `json:"pago"`
	Summary OrderSummary        `json:"resumen"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Orders     []OrderResponse `json:"ordenes"`
	Pagination Pagination      `json:"paginacion"`
}
