package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.OrderLineRepository = (*OrderLineRepo)(nil)
	_ repository.PaymentRepository   = (*PaymentRepo)(nil)
)

type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `orden_id, usuario_id, fecha_orden, total, estado, metodo_pago, direccion_envio, notas, comprobante_pago`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.OrderedAt, &o.Total, &o.Status, &o.PaymentMethod, &o.ShippingAddress, &o.Notes, &o.ReceiptNumber); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `INSERT INTO ordenes (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.UserID, o.OrderedAt, o.Total, o.Status, o.PaymentMethod, o.ShippingAddress, o.Notes, o.ReceiptNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM ordenes WHERE orden_id = $1`, id)
}

func (r *OrderRepo) LockByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM ordenes WHERE orden_id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM ordenes WHERE usuario_id = $1 AND ($2 = '' OR estado = $2)`, f.UserID, f.Status,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+orderColumns+` FROM ordenes
		WHERE usuario_id = $1 AND ($2 = '' OR estado = $2)
		ORDER BY fecha_orden DESC, orden_id DESC
		LIMIT $3 OFFSET $4`,
		f.UserID, f.Status, limitOrAll(f.Limit), f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE ordenes SET estado = $2 WHERE orden_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ── Líneas ────────────────────────────────────────────────────────────────────

type OrderLineRepo struct {
	q Querier
}

func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

func (r *OrderLineRepo) Create(ctx context.Context, l *entity.OrderLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO items_orden (item_orden_id, orden_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.OrderID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

func (r *OrderLineRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT item_orden_id, orden_id, producto_id, cantidad, precio_unitario, subtotal
		FROM items_orden WHERE orden_id = $1 ORDER BY item_orden_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *OrderLineRepo) ListDetailsByOrder(ctx context.Context, orderID string) ([]*entity.OrderLineDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.item_orden_id, i.orden_id, i.producto_id, i.cantidad, i.precio_unitario, i.subtotal, p.titulo, p.marca
		FROM items_orden i
		JOIN productos p ON p.producto_id = i.producto_id
		WHERE i.orden_id = $1
		ORDER BY i.item_orden_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order line details: %w", err)
	}
	defer rows.Close()
	var out []*entity.OrderLineDetail
	for rows.Next() {
		var d entity.OrderLineDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal, &d.ProductTitle, &d.ProductBrand); err != nil {
			return nil, fmt.Errorf("scan order line detail: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pagos (pago_id, orden_id, monto, metodo, fecha, estado, codigo_transaccion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.OrderID, p.Amount, p.Method, p.PaidAt, p.Status, p.TransactionCode,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(ctx, `
		SELECT pago_id, orden_id, monto, metodo, fecha, estado, codigo_transaccion
		FROM pagos WHERE orden_id = $1`, orderID,
	).Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.PaidAt, &p.Status, &p.TransactionCode)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepo) UpdateStatusByOrder(ctx context.Context, orderID, status string) error {
	if _, err := r.q.Exec(ctx, `UPDATE pagos SET estado = $2 WHERE orden_id = $1`, orderID, status); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}
