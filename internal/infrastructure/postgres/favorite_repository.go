package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var _ repository.FavoriteRepository = (*FavoriteRepo)(nil)

type FavoriteRepo struct {
	q Querier
}

func NewFavoriteRepository(q Querier) *FavoriteRepo {
	return &FavoriteRepo{q: q}
}

func (r *FavoriteRepo) Create(ctx context.Context, f *entity.Favorite) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO favoritos (favorito_id, usuario_id, producto_id, fecha_agregado) VALUES ($1, $2, $3, $4)`,
		f.ID, f.UserID, f.ProductID, f.AddedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepo) Delete(ctx context.Context, userID, productID string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM favoritos WHERE usuario_id = $1 AND producto_id = $2`, userID, productID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *FavoriteRepo) GetByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Favorite, error) {
	var f entity.Favorite
	err := r.q.QueryRow(ctx, `
		SELECT favorito_id, usuario_id, producto_id, fecha_agregado FROM favoritos
		WHERE usuario_id = $1 AND producto_id = $2`, userID, productID,
	).Scan(&f.ID, &f.UserID, &f.ProductID, &f.AddedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	return &f, nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.FavoriteDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT f.favorito_id, f.usuario_id, f.producto_id, f.fecha_agregado,
			p.producto_id, p.titulo, p.descripcion, p.precio, p.estado, p.stock, p.marca, p.modelo, p.categoria_id,
			COALESCE(p.usuario_id, ''), p.activo, p.destacado, p.texto_busqueda, p.created_at, p.updated_at
		FROM favoritos f
		JOIN productos p ON p.producto_id = f.producto_id
		WHERE f.usuario_id = $1
		ORDER BY f.fecha_agregado DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	var out []*entity.FavoriteDetail
	for rows.Next() {
		var d entity.FavoriteDetail
		p := &d.Product
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductID, &d.AddedAt,
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Condition, &p.Stock, &p.Brand, &p.Model, &p.CategoryID,
			&p.SellerID, &p.Active, &p.Featured, &p.SearchText, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
