package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// InventoryRepository puerto del libro de existencias. Cada operación de cantidad es una sola
// sentencia condicional: devuelve false (sin cambios) si la condición no se cumple o no hay fila.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByProductID(ctx context.Context, productID string) (*entity.Inventory, error)
	// Decrement: available -= qty WHERE available >= qty.
	Decrement(ctx context.Context, productID string, qty int) (bool, error)
	// Release: available += qty.
	Release(ctx context.Context, productID string, qty int) (bool, error)
	// Reserve: available -= qty, reserved += qty WHERE available >= qty.
	Reserve(ctx context.Context, productID string, qty int) (bool, error)
	// ReleaseReservation: reserved -= qty, available += qty WHERE reserved >= qty.
	ReleaseReservation(ctx context.Context, productID string, qty int) (bool, error)
}
