package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/logger"
	"github.com/jhoicas/elbaul-api/pkg/textnorm"
)

// ProductUseCase catálogo: publicación, edición, baja lógica y consulta.
// El stock solo cambia por el inventario (reabastecer, checkout, cancelación).
type ProductUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock, log *logger.Logger) *ProductUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{txRunner: txRunner, repos: repos, clock: clk, log: log.Named("productos")}
}

// Create publica un producto y crea su fila de inventario con available = stock.
func (uc *ProductUseCase) Create(ctx context.Context, sellerID string, in dto.CreateProductRequest) (*dto.ProductDetailResponse, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.CategoryID) == "" {
		return nil, domain.ErrMissingFields
	}
	if !in.Price.IsPositive() || !entity.ValidCondition(in.Condition) {
		return nil, domain.ErrInvalidInput
	}
	stock := 1
	if in.Stock != nil {
		stock = *in.Stock
	}
	if stock < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var (
		product *entity.Product
		inv     *entity.Inventory
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := activeCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}
		id, err := r.Sequences.Next(ctx, domain.KindProduct)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		product = &entity.Product{
			ID:          id,
			Title:       strings.TrimSpace(in.Title),
			Description: strings.TrimSpace(in.Description),
			Price:       in.Price,
			Condition:   in.Condition,
			Stock:       stock,
			Brand:       strings.TrimSpace(in.Brand),
			Model:       strings.TrimSpace(in.Model),
			CategoryID:  in.CategoryID,
			SellerID:    sellerID,
			Active:      true,
			Featured:    in.Featured,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		product.SearchText = searchText(product)
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		invID, err := r.Sequences.Next(ctx, domain.KindInventory)
		if err != nil {
			return err
		}
		inv = &entity.Inventory{
			ID:        invID,
			ProductID: id,
			Available: stock,
			Location:  strings.TrimSpace(in.Location),
			UpdatedAt: now,
		}
		return r.Inventory.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("producto_id", product.ID).Int("stock", stock).Msg("producto publicado")
	return &dto.ProductDetailResponse{Product: dto.FromProduct(product), Inventory: dto.FromInventory(inv)}, nil
}

// Update edita los campos del producto. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if in.Title != nil {
			p.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			p.Description = strings.TrimSpace(*in.Description)
		}
		if in.Price != nil {
			if !in.Price.IsPositive() {
				return domain.ErrInvalidInput
			}
			p.Price = *in.Price
		}
		if in.Condition != nil {
			if !entity.ValidCondition(*in.Condition) {
				return domain.ErrInvalidInput
			}
			p.Condition = *in.Condition
		}
		if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
			if err := activeCategory(ctx, r, *in.CategoryID); err != nil {
				return err
			}
			p.CategoryID = *in.CategoryID
		}
		if in.Brand != nil {
			p.Brand = strings.TrimSpace(*in.Brand)
		}
		if in.Model != nil {
			p.Model = strings.TrimSpace(*in.Model)
		}
		if in.Featured != nil {
			p.Featured = *in.Featured
		}
		if in.Active != nil {
			p.Active = *in.Active
		}
		p.SearchText = searchText(p)
		p.UpdatedAt = uc.clock.Now()
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// Delete baja lógica: el producto deja de listarse y de poder comprarse.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repos.Products.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	uc.log.Info().Str("producto_id", id).Msg("producto desactivado")
	return nil
}

// List catálogo público paginado. q busca sin distinguir tildes ni mayúsculas.
func (uc *ProductUseCase) List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductListResponse, error) {
	req.DefaultPage()
	list, total, err := uc.repos.Products.List(ctx, repository.ProductFilter{
		CategoryID: req.CategoryID,
		Condition:  req.Condition,
		Search:     textnorm.Fold(req.Query),
		OnlyActive: true,
		Limit:      req.Limit,
		Offset:     req.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{Products: items, Pagination: dto.NewPagination(req.PageRequest, total)}, nil
}

// GetByID detalle público de un producto activo con su inventario.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Purchasable() {
		return nil, domain.ErrProductNotFound
	}
	inv, err := uc.repos.Inventory.GetByProductID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{Product: dto.FromProduct(p), Inventory: dto.FromInventory(inv)}, nil
}

func activeCategory(ctx context.Context, r repository.Repos, id string) error {
	cat, err := r.Categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil || !cat.Active {
		return domain.ErrInvalidCategory
	}
	return nil
}

func searchText(p *entity.Product) string {
	return textnorm.Join(p.Title, p.Description, p.Brand, p.Model)
}
