package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

// FavoriteUseCase lista de deseos del usuario.
type FavoriteUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
}

func NewFavoriteUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock) *FavoriteUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &FavoriteUseCase{txRunner: txRunner, repos: repos, clock: clk}
}

func (uc *FavoriteUseCase) List(ctx context.Context, userID string) ([]dto.FavoriteResponse, error) {
	list, err := uc.repos.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FavoriteResponse, 0, len(list))
	for _, f := range list {
		p := dto.FromProduct(&f.Product)
		out = append(out, dto.FavoriteResponse{ID: f.ID, AddedAt: f.AddedAt, Product: &p})
	}
	return out, nil
}

// Add marca un producto activo como favorito.
func (uc *FavoriteUseCase) Add(ctx context.Context, userID, productID string) (*dto.FavoriteResponse, error) {
	var fav *entity.Favorite
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if !p.Purchasable() {
			return domain.ErrProductNotFound
		}
		id, err := r.Sequences.Next(ctx, domain.KindFavorite)
		if err != nil {
			return err
		}
		fav = &entity.Favorite{ID: id, UserID: userID, ProductID: productID, AddedAt: uc.clock.Now()}
		if err := r.Favorites.Create(ctx, fav); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrAlreadyInFavorites
			}
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	p := dto.FromProduct(product)
	return &dto.FavoriteResponse{ID: fav.ID, AddedAt: fav.AddedAt, Product: &p}, nil
}

func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, productID string) error {
	ok, err := uc.repos.Favorites.Delete(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

// Check indica si el producto está en los favoritos del usuario.
func (uc *FavoriteUseCase) Check(ctx context.Context, userID, productID string) (*dto.FavoriteCheckResponse, error) {
	f, err := uc.repos.Favorites.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return &dto.FavoriteCheckResponse{}, nil
	}
	return &dto.FavoriteCheckResponse{IsFavorite: true, FavoriteID: &f.ID}, nil
}
