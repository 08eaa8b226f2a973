package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo libro de existencias. Todas las operaciones de cantidad son un UPDATE condicional.
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventarios (inventario_id, producto_id, cantidad_disponible, cantidad_reservada, ubicacion, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.ProductID, inv.Available, inv.Reserved, inv.Location, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByProductID(ctx context.Context, productID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, `
		SELECT inventario_id, producto_id, cantidad_disponible, cantidad_reservada, ubicacion, updated_at
		FROM inventarios WHERE producto_id = $1`, productID,
	).Scan(&inv.ID, &inv.ProductID, &inv.Available, &inv.Reserved, &inv.Location, &inv.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

func (r *InventoryRepo) Decrement(ctx context.Context, productID string, qty int) (bool, error) {
	return r.apply(ctx, "decrement", `
		UPDATE inventarios SET cantidad_disponible = cantidad_disponible - $2, updated_at = now()
		WHERE producto_id = $1 AND cantidad_disponible >= $2`, productID, qty)
}

func (r *InventoryRepo) Release(ctx context.Context, productID string, qty int) (bool, error) {
	return r.apply(ctx, "release", `
		UPDATE inventarios SET cantidad_disponible = cantidad_disponible + $2, updated_at = now()
		WHERE producto_id = $1`, productID, qty)
}

func (r *InventoryRepo) Reserve(ctx context.Context, productID string, qty int) (bool, error) {
	return r.apply(ctx, "reserve", `
		UPDATE inventarios SET cantidad_disponible = cantidad_disponible - $2,
			cantidad_reservada = cantidad_reservada + $2, updated_at = now()
		WHERE producto_id = $1 AND cantidad_disponible >= $2`, productID, qty)
}

func (r *InventoryRepo) ReleaseReservation(ctx context.Context, productID string, qty int) (bool, error) {
	return r.apply(ctx, "release reservation", `
		UPDATE inventarios SET cantidad_reservada = cantidad_reservada - $2,
			cantidad_disponible = cantidad_disponible + $2, updated_at = now()
		WHERE producto_id = $1 AND cantidad_reservada >= $2`, productID, qty)
}

func (r *InventoryRepo) apply(ctx context.Context, op, query, productID string, qty int) (bool, error) {
	cmd, err := r.q.Exec(ctx, query, productID, qty)
	if err != nil {
		return false, fmt.Errorf("inventory %s: %w", op, err)
	}
	return cmd.RowsAffected() == 1, nil
}
