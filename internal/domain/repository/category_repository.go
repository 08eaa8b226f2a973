package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Category, error)
}
