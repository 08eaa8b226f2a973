package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

// ReviewUseCase reseñas de productos. Solo las aprobadas por un admin son públicas.
type ReviewUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
}

func NewReviewUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock) *ReviewUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &ReviewUseCase{txRunner: txRunner, repos: repos, clock: clk}
}

// Upsert crea la reseña del usuario o la edita. Editar vuelve a dejarla pendiente de aprobación.
func (uc *ReviewUseCase) Upsert(ctx context.Context, userID, productID string, in dto.UpsertReviewRequest) (*dto.ReviewResponse, bool, error) {
	if !entity.ValidRating(in.Rating) {
		return nil, false, domain.ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > entity.MaxCommentLength {
		return nil, false, domain.ErrInvalidInput
	}

	var (
		review  *entity.Review
		created bool
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		existing, err := r.Reviews.GetByUserAndProduct(ctx, userID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Rating = in.Rating
			existing.Comment = comment
			existing.Approved = false
			review = existing
			return r.Reviews.Update(ctx, existing)
		}
		id, err := r.Sequences.Next(ctx, domain.KindReview)
		if err != nil {
			return err
		}
		review = &entity.Review{
			ID:        id,
			ProductID: productID,
			UserID:    userID,
			Rating:    in.Rating,
			Comment:   comment,
			CreatedAt: uc.clock.Now(),
		}
		created = true
		return r.Reviews.Create(ctx, review)
	})
	if err != nil {
		return nil, false, err
	}
	resp := dto.FromReview(review)
	return &resp, created, nil
}

// ListByProduct reseñas aprobadas con sus estadísticas.
func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID string) (*dto.ProductReviewsResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	list, err := uc.repos.Reviews.ListApprovedByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	stats, err := uc.repos.Reviews.StatsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductReviewsResponse{Reviews: make([]dto.ReviewResponse, 0, len(list)), Stats: dto.FromReviewStats(stats)}
	for _, rv := range list {
		out.Reviews = append(out.Reviews, dto.FromReview(rv))
	}
	return out, nil
}

// Mine reseña del usuario sobre el producto, aprobada o no. Sin reseña devuelve Review nil.
func (uc *ReviewUseCase) Mine(ctx context.Context, userID, productID string) (*dto.MyReviewResponse, error) {
	rv, err := uc.repos.Reviews.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.MyReviewResponse{}
	if rv != nil {
		resp := dto.FromReview(rv)
		out.Review = &resp
	}
	return out, nil
}

// DeleteMine elimina la reseña del usuario sobre el producto.
func (uc *ReviewUseCase) DeleteMine(ctx context.Context, userID, productID string) error {
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		rv, err := r.Reviews.GetByUserAndProduct(ctx, userID, productID)
		if err != nil {
			return err
		}
		if rv == nil {
			return domain.ErrReviewNotFound
		}
		ok, err := r.Reviews.Delete(ctx, rv.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrReviewNotFound
		}
		return nil
	})
}

// Approve publica una reseña.
func (uc *ReviewUseCase) Approve(ctx context.Context, id string) error {
	ok, err := uc.repos.Reviews.Approve(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrReviewNotFound
	}
	return nil
}
