package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

type ReturnRepo struct {
	q Querier
}

func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `devolucion_id, orden_id, producto_id, usuario_id, motivo, estado, fecha_solicitud, monto_reembolso`

func scanReturn(row pgx.Row) (*entity.ReturnRequest, error) {
	var rr entity.ReturnRequest
	if err := row.Scan(&rr.ID, &rr.OrderID, &rr.ProductID, &rr.UserID, &rr.Reason, &rr.Status, &rr.RequestedAt, &rr.RefundAmount); err != nil {
		return nil, err
	}
	return &rr, nil
}

func (r *ReturnRepo) Create(ctx context.Context, rr *entity.ReturnRequest) error {
	_, err := r.q.Exec(ctx, `INSERT INTO devoluciones (`+returnColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rr.ID, rr.OrderID, rr.ProductID, rr.UserID, rr.Reason, rr.Status, rr.RequestedAt, rr.RefundAmount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.ReturnRequest, error) {
	rr, err := scanReturn(r.q.QueryRow(ctx, `SELECT `+returnColumns+` FROM devoluciones WHERE devolucion_id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return rr, nil
}

func (r *ReturnRepo) ListByUser(ctx context.Context, f repository.ReturnFilter) ([]*entity.ReturnRequest, int, error) {
	const where = ` FROM devoluciones WHERE usuario_id = $1 AND ($2 = '' OR estado = $2)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+where, f.UserID, f.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count returns: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+returnColumns+where+` ORDER BY fecha_solicitud DESC LIMIT $3 OFFSET $4`,
		f.UserID, f.Status, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var out []*entity.ReturnRequest
	for rows.Next() {
		rr, err := scanReturn(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan return: %w", err)
		}
		out = append(out, rr)
	}
	return out, total, rows.Err()
}
