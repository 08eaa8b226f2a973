package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// OrderFilter criterios de listado de órdenes de un usuario.
type OrderFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

// OrderRepository puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// LockByID bloquea la fila de la orden hasta el fin de la transacción.
	LockByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, filter OrderFilter) ([]*entity.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// OrderLineRepository puerto de persistencia para OrderLine.
type OrderLineRepository interface {
	Create(ctx context.Context, line *entity.OrderLine) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	ListDetailsByOrder(ctx context.Context, orderID string) ([]*entity.OrderLineDetail, error)
}

// PaymentRepository puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
	UpdateStatusByOrder(ctx context.Context, orderID, status string) error
}
