package inventory

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// LedgerUseCase libro de existencias: consulta de disponibilidad, reservas y reposición.
// Toda operación que mueve cantidades corre en una transacción y ajusta Product.stock junto con
// Inventory.available, de modo que ambos contadores se mantienen iguales.
type LedgerUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner repository.TxRunner, repos repository.Repos, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{txRunner: txRunner, repos: repos, log: log.Named("inventario")}
}

// CheckAvailability indica si hay qty unidades disponibles del producto.
func (uc *LedgerUseCase) CheckAvailability(ctx context.Context, productID string, qty int) (*dto.AvailabilityResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	inv, err := uc.repos.Inventory.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrProductNotFound
	}
	return &dto.AvailabilityResponse{ProductID: productID, Quantity: qty, Available: inv.CanFulfill(qty)}, nil
}

// Get devuelve los contadores actuales del producto.
func (uc *LedgerUseCase) Get(ctx context.Context, productID string) (*dto.InventoryResponse, error) {
	inv, err := uc.repos.Inventory.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInventoryNotFound
	}
	return dto.FromInventory(inv), nil
}

// Reserve aparta qty unidades: available -= qty, reserved += qty. Falla con ErrInsufficientStock
// sin cambiar nada si no alcanza.
func (uc *LedgerUseCase) Reserve(ctx context.Context, productID string, qty int) (*dto.InventoryResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return uc.apply(ctx, productID, func(r repository.Repos) error {
		ok, err := r.Inventory.Reserve(ctx, productID, qty)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		ok, err = r.Products.DecrementStock(ctx, productID, qty)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		return nil
	})
}

// ReleaseReservation devuelve qty unidades reservadas a disponibles. Es la inversa exacta de Reserve.
func (uc *LedgerUseCase) ReleaseReservation(ctx context.Context, productID string, qty int) (*dto.InventoryResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return uc.apply(ctx, productID, func(r repository.Repos) error {
		ok, err := r.Inventory.ReleaseReservation(ctx, productID, qty)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		return r.Products.IncrementStock(ctx, productID, qty)
	})
}

// Restock suma qty unidades disponibles (ingreso de mercadería).
func (uc *LedgerUseCase) Restock(ctx context.Context, productID string, qty int) (*dto.InventoryResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return uc.apply(ctx, productID, func(r repository.Repos) error {
		return ReturnToStock(ctx, r, productID, qty)
	})
}

func (uc *LedgerUseCase) apply(ctx context.Context, productID string, fn func(r repository.Repos) error) (*dto.InventoryResponse, error) {
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		inv, err := r.Inventory.GetByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInventoryNotFound
		}
		return fn(r)
	})
	if err != nil {
		return nil, err
	}
	out, err := uc.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("producto_id", productID).Int("disponible", out.Available).Int("reservada", out.Reserved).Msg("inventario actualizado")
	return out, nil
}

// TakeFromStock descuenta qty de Inventory.available y Product.stock con updates condicionales.
// Pensado para correr dentro de una transacción: ErrInsufficientStock si alguno no alcanza.
func TakeFromStock(ctx context.Context, r repository.Repos, productID string, qty int) error {
	ok, err := r.Inventory.Decrement(ctx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInsufficientStock
	}
	ok, err = r.Products.DecrementStock(ctx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ReturnToStock suma qty a Inventory.available y Product.stock. Pensado para correr dentro de una transacción.
func ReturnToStock(ctx context.Context, r repository.Repos, productID string, qty int) error {
	ok, err := r.Inventory.Release(ctx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInventoryNotFound
	}
	return r.Products.IncrementStock(ctx, productID, qty)
}
