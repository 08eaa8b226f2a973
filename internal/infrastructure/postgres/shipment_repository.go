package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

type ShipmentRepo struct {
	q Querier
}

func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `e.envio_id, e.orden_id, e.transportista, e.numero_seguimiento, e.fecha_envio, e.fecha_estimada, e.estado, e.costo_envio`

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	if err := row.Scan(&s.ID, &s.OrderID, &s.Carrier, &s.TrackingNumber, &s.ShippedAt, &s.EstimatedAt, &s.Status, &s.Cost); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO envios (envio_id, orden_id, transportista, numero_seguimiento, fecha_envio, fecha_estimada, estado, costo_envio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.OrderID, s.Carrier, s.TrackingNumber, s.ShippedAt, s.EstimatedAt, s.Status, s.Cost,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) getOne(ctx context.Context, where, arg string) (*entity.Shipment, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM envios e WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	return r.getOne(ctx, `e.envio_id = $1`, id)
}

func (r *ShipmentRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Shipment, error) {
	return r.getOne(ctx, `e.orden_id = $1`, orderID)
}

func (r *ShipmentRepo) GetByTracking(ctx context.Context, tracking string) (*entity.Shipment, error) {
	return r.getOne(ctx, `e.numero_seguimiento = $1`, tracking)
}

// ListByUser envíos de las órdenes del usuario; userID vacío lista todos.
func (r *ShipmentRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Shipment, int, error) {
	const from = ` FROM envios e JOIN ordenes o ON o.orden_id = e.orden_id WHERE ($1 = '' OR o.usuario_id = $1)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+from, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shipments: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+shipmentColumns+from+` ORDER BY e.fecha_envio DESC LIMIT $2 OFFSET $3`,
		userID, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan shipment: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *ShipmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE envios SET estado = $2 WHERE envio_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}
