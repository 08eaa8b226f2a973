package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// FavoriteRepository puerto de persistencia para Favorite.
// Create devuelve domain.ErrDuplicate si el producto ya está en favoritos.
type FavoriteRepository interface {
	Create(ctx context.Context, fav *entity.Favorite) error
	Delete(ctx context.Context, userID, productID string) (bool, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.FavoriteDetail, error)
}
