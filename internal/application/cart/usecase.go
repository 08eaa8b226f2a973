package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// CartUseCase operaciones sobre el carrito activo del usuario.
// Todas las escrituras bloquean la fila del carrito activo, igual que el checkout, y así no se
// mezclan con una conversión en curso.
type CartUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
	log      *logger.Logger
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock, log *logger.Logger) *CartUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CartUseCase{txRunner: txRunner, repos: repos, clock: clk, log: log.Named("carrito")}
}

// View devuelve el carrito activo con sus líneas y totales. Sin carrito devuelve uno vacío.
func (uc *CartUseCase) View(ctx context.Context, userID string) (*dto.CartViewResponse, error) {
	out := &dto.CartViewResponse{Items: []dto.CartItemResponse{}, TotalPrice: decimal.Zero}
	cart, err := uc.repos.Carts.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return out, nil
	}
	out.Cart = dto.FromCart(cart)

	items, err := uc.repos.CartItems.ListDetailsByCart(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		resp := dto.FromCartItem(&it.CartItem)
		resp.ProductTitle = it.ProductTitle
		active := it.ProductActive
		resp.ProductActive = &active
		out.Items = append(out.Items, resp)
		out.TotalItems += it.Quantity
		out.TotalPrice = out.TotalPrice.Add(it.Subtotal)
	}
	return out, nil
}

// AddItem agrega qty unidades del producto al carrito activo (lo crea si no existe).
// Si el producto ya estaba en el carrito suma la cantidad y refresca el precio unitario.
// created indica si se creó una línea nueva.
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, in dto.AddCartItemRequest) (item *dto.CartItemResponse, created bool, err error) {
	if in.ProductID == "" {
		return nil, false, domain.ErrMissingFields
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if !entity.ValidCartQuantity(qty) {
		return nil, false, domain.ErrInvalidQuantity
	}

	now := uc.clock.Now()
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if !product.Purchasable() {
			return domain.ErrProductNotFound
		}
		inv, err := r.Inventory.GetByProductID(ctx, in.ProductID)
		if err != nil {
			return err
		}

		cart, err := uc.activeCartForUpdate(ctx, r, userID)
		if err != nil {
			return err
		}

		existing, err := r.CartItems.GetByCartAndProduct(ctx, cart.ID, in.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			newQty := existing.Quantity + qty
			if !entity.ValidCartQuantity(newQty) {
				return domain.ErrInvalidQuantity
			}
			if !inv.CanFulfill(newQty) {
				return domain.ErrInsufficientStock
			}
			existing.Quantity = newQty
			existing.UnitPrice = product.Price
			existing.UpdatedAt = now
			existing.Recalculate()
			if err := r.CartItems.Update(ctx, existing); err != nil {
				return err
			}
			resp := dto.FromCartItem(existing)
			item = &resp
		} else {
			if !inv.CanFulfill(qty) {
				return domain.ErrInsufficientStock
			}
			id, err := r.Sequences.Next(ctx, domain.KindCartItem)
			if err != nil {
				return err
			}
			ci := &entity.CartItem{
				ID:        id,
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  qty,
				UnitPrice: product.Price,
				CreatedAt: now,
				UpdatedAt: now,
			}
			ci.Recalculate()
			if err := r.CartItems.Create(ctx, ci); err != nil {
				return err
			}
			resp := dto.FromCartItem(ci)
			item = &resp
			created = true
		}
		return r.Carts.UpdateStatus(ctx, cart.ID, entity.CartActive, now)
	})
	if err != nil {
		return nil, false, err
	}
	return item, created, nil
}

// UpdateItem cambia la cantidad de una línea del carrito del usuario.
func (uc *CartUseCase) UpdateItem(ctx context.Context, userID, itemID string, qty int) (*dto.CartItemResponse, error) {
	if !entity.ValidCartQuantity(qty) {
		return nil, domain.ErrInvalidQuantity
	}
	var out *dto.CartItemResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		item, err := uc.lockedItem(ctx, r, userID, itemID)
		if err != nil {
			return err
		}
		product, err := r.Products.GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !product.Purchasable() {
			return domain.ErrProductNotFound
		}
		inv, err := r.Inventory.GetByProductID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !inv.CanFulfill(qty) {
			return domain.ErrInsufficientStock
		}
		item.Quantity = qty
		item.UnitPrice = product.Price
		item.UpdatedAt = uc.clock.Now()
		item.Recalculate()
		if err := r.CartItems.Update(ctx, item); err != nil {
			return err
		}
		resp := dto.FromCartItem(item)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem elimina una línea del carrito del usuario.
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID string) error {
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		item, err := uc.lockedItem(ctx, r, userID, itemID)
		if err != nil {
			return err
		}
		return r.CartItems.Delete(ctx, item.ID)
	})
}

// Clear vacía el carrito activo; el carrito sigue activo.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		cart, err := r.Carts.LockActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrNoActiveCart
		}
		if err := r.CartItems.DeleteByCart(ctx, cart.ID); err != nil {
			return err
		}
		return r.Carts.UpdateStatus(ctx, cart.ID, entity.CartActive, uc.clock.Now())
	})
}

// activeCartForUpdate bloquea el carrito activo o crea uno. Si otra petición lo creó en paralelo
// (ErrDuplicate por el índice único parcial) se relee el suyo.
func (uc *CartUseCase) activeCartForUpdate(ctx context.Context, r repository.Repos, userID string) (*entity.Cart, error) {
	cart, err := r.Carts.LockActiveByUser(ctx, userID)
	if err != nil || cart != nil {
		return cart, err
	}
	id, err := r.Sequences.Next(ctx, domain.KindCart)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	cart = &entity.Cart{ID: id, UserID: userID, Status: entity.CartActive, CreatedAt: now, UpdatedAt: now}
	if err := r.Carts.Create(ctx, cart); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		cart, err = r.Carts.LockActiveByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cart == nil {
			return nil, domain.ErrConflict
		}
		return cart, nil
	}
	uc.log.Debug().Str("usuario_id", userID).Str("carrito_id", id).Msg("carrito creado")
	return cart, nil
}

// lockedItem bloquea el carrito activo del usuario y devuelve la línea si pertenece a él.
// Una línea de un carrito ya convertido no se puede tocar.
func (uc *CartUseCase) lockedItem(ctx context.Context, r repository.Repos, userID, itemID string) (*entity.CartItem, error) {
	item, err := r.CartItems.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrCartItemNotFound
	}
	cart, err := r.Carts.LockActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.ID != item.CartID {
		owner, err := r.Carts.GetByID(ctx, item.CartID)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.UserID != userID {
			return nil, domain.ErrForbidden
		}
		return nil, domain.ErrCartItemNotFound
	}
	// releída con el carrito bloqueado
	item, err = r.CartItems.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrCartItemNotFound
	}
	return item, nil
}
