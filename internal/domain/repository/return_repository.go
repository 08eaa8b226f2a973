package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// ReturnFilter criterios de listado de devoluciones.
type ReturnFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

// ReturnRepository puerto de persistencia para ReturnRequest.
// Create devuelve domain.ErrDuplicate si ya hay una devolución para (orden, producto, usuario).
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.ReturnRequest) error
	GetByID(ctx context.Context, id string) (*entity.ReturnRequest, error)
	ListByUser(ctx context.Context, filter ReturnFilter) ([]*entity.ReturnRequest, int, error)
}
