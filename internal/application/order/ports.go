package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// Tipos de evento de orden.
const (
	EventOrderCreated   = "orden.creada"
	EventOrderCancelled = "orden.cancelada"
)

// EventItem línea incluida en los eventos de orden.
type EventItem struct {
	ProductID string          `json:"producto_id"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// OrderEvent payload publicado después de confirmar la transacción.
type OrderEvent struct {
	Type       string          `json:"-"`
	OrderID    string          `json:"orden_id"`
	UserID     string          `json:"usuario_id"`
	Status     string          `json:"estado"`
	Total      decimal.Decimal `json:"total"`
	Items      []EventItem     `json:"items"`
	Reason     string          `json:"motivo,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher publica eventos de órdenes. Los errores de publicación no afectan a la orden.
type EventPublisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
}

// Metrics contadores de negocio del flujo de compra.
type Metrics interface {
	CheckoutSucceeded(total decimal.Decimal, items int)
	CheckoutFailed(reason string)
	OrderCancelled()
}

// IdempotencyStore recuerda qué orden produjo cada Idempotency-Key.
type IdempotencyStore interface {
	// Claim reserva la clave. Si ya existía devuelve claimed=false y, si la orden terminó, su id.
	Claim(ctx context.Context, userID, key string, ttl time.Duration) (claimed bool, orderID string, err error)
	Complete(ctx context.Context, userID, key, orderID string, ttl time.Duration) error
	Release(ctx context.Context, userID, key string) error
}

// ReceiptData datos para el comprobante de pago.
type ReceiptData struct {
	Order   *entity.Order
	Lines   []*entity.OrderLineDetail
	Payment *entity.Payment
	Buyer   *entity.User
}

// ReceiptGenerator genera el comprobante en PDF.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, OrderEvent) error { return nil }

type noopMetrics struct{}

func (noopMetrics) CheckoutSucceeded(decimal.Decimal, int) {}
func (noopMetrics) CheckoutFailed(string)                  {}
func (noopMetrics) OrderCancelled()                        {}
