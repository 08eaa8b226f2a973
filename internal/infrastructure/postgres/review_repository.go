package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

type ReviewRepo struct {
	q Querier
}

func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

const reviewColumns = `r.resena_id, r.producto_id, r.usuario_id, r.puntuacion, r.comentario, r.fecha, r.aprobada,
	COALESCE(u.nombre || ' ' || u.apellido, '')`

const reviewFrom = ` FROM resenas r LEFT JOIN usuarios u ON u.usuario_id = r.usuario_id`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rv entity.Review
	if err := row.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.Approved, &rv.UserName); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO resenas (resena_id, producto_id, usuario_id, puntuacion, comentario, fecha, aprobada)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt, rv.Approved,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) Update(ctx context.Context, rv *entity.Review) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE resenas SET puntuacion = $2, comentario = $3, fecha = $4, aprobada = $5 WHERE resena_id = $1`,
		rv.ID, rv.Rating, rv.Comment, rv.CreatedAt, rv.Approved,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Review, error) {
	rv, err := scanReview(r.q.QueryRow(ctx, `SELECT `+reviewColumns+reviewFrom+` WHERE `+where, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.getOne(ctx, `r.resena_id = $1`, id)
}

func (r *ReviewRepo) GetByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Review, error) {
	return r.getOne(ctx, `r.usuario_id = $1 AND r.producto_id = $2`, userID, productID)
}

func (r *ReviewRepo) Approve(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE resenas SET aprobada = TRUE WHERE resena_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("approve review: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM resenas WHERE resena_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ReviewRepo) ListApprovedByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+reviewColumns+reviewFrom+` WHERE r.producto_id = $1 AND r.aprobada ORDER BY r.fecha DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var out []*entity.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// StatsByProduct agrega solo reseñas aprobadas.
func (r *ReviewRepo) StatsByProduct(ctx context.Context, productID string) (*entity.ReviewStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT puntuacion, count(*) FROM resenas
		WHERE producto_id = $1 AND aprobada
		GROUP BY puntuacion`, productID)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}
	defer rows.Close()
	stats := &entity.ReviewStats{Distribution: make(map[int]int, entity.MaxRating)}
	for i := entity.MinRating; i <= entity.MaxRating; i++ {
		stats.Distribution[i] = 0
	}
	sum := 0
	for rows.Next() {
		var rating, n int
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, fmt.Errorf("scan review stats: %w", err)
		}
		stats.Distribution[rating] = n
		stats.Total += n
		sum += rating * n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.Average = float64(sum) / float64(stats.Total)
	}
	return stats, nil
}
