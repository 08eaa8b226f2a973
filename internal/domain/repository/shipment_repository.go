package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// ShipmentRepository puerto de persistencia para Shipment.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Shipment, error)
	GetByTracking(ctx context.Context, tracking string) (*entity.Shipment, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Shipment, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
