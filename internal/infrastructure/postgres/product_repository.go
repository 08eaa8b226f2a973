package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `producto_id, titulo, descripcion, precio, estado, stock, marca, modelo, categoria_id,
	COALESCE(usuario_id, ''), activo, destacado, texto_busqueda, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Condition, &p.Stock, &p.Brand, &p.Model, &p.CategoryID,
		&p.SellerID, &p.Active, &p.Featured, &p.SearchText, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (producto_id, titulo, descripcion, precio, estado, stock, marca, modelo, categoria_id,
			usuario_id, activo, destacado, texto_busqueda, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.Condition, p.Stock, p.Brand, p.Model, p.CategoryID,
		p.SellerID, p.Active, p.Featured, p.SearchText, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE producto_id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables. No modifica stock (se maneja vía inventario).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET titulo = $2, descripcion = $3, precio = $4, estado = $5, marca = $6, modelo = $7,
			categoria_id = $8, activo = $9, destacado = $10, texto_busqueda = $11, updated_at = $12
		WHERE producto_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.Condition, p.Brand, p.Model,
		p.CategoryID, p.Active, p.Featured, p.SearchText, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE productos SET activo = FALSE, updated_at = now() WHERE producto_id = $1 AND activo`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate product: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List filtra el catálogo; Search se compara contra texto_busqueda ya normalizado.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := `
		FROM productos
		WHERE ($1 = '' OR categoria_id = $1)
		  AND ($2 = '' OR estado = $2)
		  AND ($3 = '' OR texto_busqueda LIKE '%' || $3 || '%')
		  AND (activo OR NOT $4)`
	args := []any{f.CategoryID, f.Condition, f.Search, f.OnlyActive}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+where+` ORDER BY destacado DESC, created_at DESC LIMIT $5 OFFSET $6`,
		append(args, limitOrAll(f.Limit), f.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// DecrementStock resta qty solo si alcanza.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = stock - $2, updated_at = now() WHERE producto_id = $1 AND stock >= $2`, id, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement product stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, id string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = stock + $2, updated_at = now() WHERE producto_id = $1`, id, qty,
	)
	if err != nil {
		return fmt.Errorf("increment product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
