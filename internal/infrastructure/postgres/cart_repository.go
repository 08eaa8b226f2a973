package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var (
	_ repository.CartRepository     = (*CartRepo)(nil)
	_ repository.CartItemRepository = (*CartItemRepo)(nil)
)

type CartRepo struct {
	q Querier
}

func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Create inserta el carrito. Si el usuario ya tiene uno activo no inserta y devuelve ErrDuplicate
// sin abortar la transacción en curso.
func (r *CartRepo) Create(ctx context.Context, c *entity.Cart) error {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO carritos (carrito_id, usuario_id, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (usuario_id) WHERE estado = 'activo' DO NOTHING`,
		c.ID, c.UserID, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

const cartColumns = `carrito_id, usuario_id, estado, created_at, updated_at`

func (r *CartRepo) getOne(ctx context.Context, query, arg string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	return r.getOne(ctx, `SELECT `+cartColumns+` FROM carritos WHERE carrito_id = $1`, id)
}

func (r *CartRepo) GetActiveByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.getOne(ctx, `SELECT `+cartColumns+` FROM carritos WHERE usuario_id = $1 AND estado = 'activo'`, userID)
}

func (r *CartRepo) LockActiveByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.getOne(ctx, `SELECT `+cartColumns+` FROM carritos WHERE usuario_id = $1 AND estado = 'activo' FOR UPDATE`, userID)
}

func (r *CartRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE carritos SET estado = $2, updated_at = $3 WHERE carrito_id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update cart status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Items ─────────────────────────────────────────────────────────────────────

type CartItemRepo struct {
	q Querier
}

func NewCartItemRepository(q Querier) *CartItemRepo {
	return &CartItemRepo{q: q}
}

const cartItemColumns = `item_carrito_id, carrito_id, producto_id, cantidad, precio_unitario, subtotal, created_at, updated_at`

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartItemRepo) Create(ctx context.Context, it *entity.CartItem) error {
	_, err := r.q.Exec(ctx, `INSERT INTO items_carrito (`+cartItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.CartID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (r *CartItemRepo) Update(ctx context.Context, it *entity.CartItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE items_carrito SET cantidad = $2, precio_unitario = $3, subtotal = $4, updated_at = $5
		WHERE item_carrito_id = $1`,
		it.ID, it.Quantity, it.UnitPrice, it.Subtotal, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartItemRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	it, err := scanCartItem(r.q.QueryRow(ctx, `SELECT `+cartItemColumns+` FROM items_carrito WHERE item_carrito_id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return it, nil
}

func (r *CartItemRepo) GetByCartAndProduct(ctx context.Context, cartID, productID string) (*entity.CartItem, error) {
	it, err := scanCartItem(r.q.QueryRow(ctx,
		`SELECT `+cartItemColumns+` FROM items_carrito WHERE carrito_id = $1 AND producto_id = $2`, cartID, productID,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item by product: %w", err)
	}
	return it, nil
}

func (r *CartItemRepo) ListByCart(ctx context.Context, cartID string) ([]*entity.CartItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cartItemColumns+` FROM items_carrito WHERE carrito_id = $1 ORDER BY producto_id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var out []*entity.CartItem
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CartItemRepo) ListDetailsByCart(ctx context.Context, cartID string) ([]*entity.CartItemDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.item_carrito_id, i.carrito_id, i.producto_id, i.cantidad, i.precio_unitario, i.subtotal, i.created_at, i.updated_at,
			p.titulo, p.activo, p.precio, p.estado
		FROM items_carrito i
		JOIN productos p ON p.producto_id = i.producto_id
		WHERE i.carrito_id = $1
		ORDER BY i.created_at`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart item details: %w", err)
	}
	defer rows.Close()
	var out []*entity.CartItemDetail
	for rows.Next() {
		var d entity.CartItemDetail
		if err := rows.Scan(
			&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal, &d.CreatedAt, &d.UpdatedAt,
			&d.ProductTitle, &d.ProductActive, &d.CurrentPrice, &d.Condition,
		); err != nil {
			return nil, fmt.Errorf("scan cart item detail: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *CartItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items_carrito WHERE item_carrito_id = $1`, id); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (r *CartItemRepo) DeleteByCart(ctx context.Context, cartID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items_carrito WHERE carrito_id = $1`, cartID); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}
