package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

// CategoryUseCase alta y listado de categorías.
type CategoryUseCase struct {
	txRunner repository.TxRunner
	repo     repository.CategoryRepository
	clock    clock.Clock
}

func NewCategoryUseCase(txRunner repository.TxRunner, repo repository.CategoryRepository, clk clock.Clock) *CategoryUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &CategoryUseCase{txRunner: txRunner, repo: repo, clock: clk}
}

// Create crea una categoría activa. Nombre repetido devuelve ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrMissingFields
	}
	var cat *entity.Category
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		id, err := r.Sequences.Next(ctx, domain.KindCategory)
		if err != nil {
			return err
		}
		cat = &entity.Category{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Active:      true,
			CreatedAt:   uc.clock.Now(),
		}
		return r.Categories.Create(ctx, cat)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	resp := dto.FromCategory(cat)
	return &resp, nil
}

// Get categoría activa por id.
func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Active {
		return nil, domain.ErrCategoryNotFound
	}
	resp := dto.FromCategory(c)
	return &resp, nil
}

// List categorías activas ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}
