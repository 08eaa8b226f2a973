package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// ReviewRepository puerto de persistencia para Review.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Review, error)
	Approve(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListApprovedByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
	StatsByProduct(ctx context.Context, productID string) (*entity.ReviewStats, error)
}
