package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo.
type ProductFilter struct {
	CategoryID string
	Condition  string
	Search     string // ya normalizado con textnorm.Fold
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste los campos editables; no toca Stock.
	Update(ctx context.Context, product *entity.Product) error
	Deactivate(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	// DecrementStock resta qty solo si stock >= qty. false si no alcanzó.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	IncrementStock(ctx context.Context, id string, qty int) error
}
