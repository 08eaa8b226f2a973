package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico por entidad en la tabla secuencias.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next avanza el contador de la entidad y devuelve el id formateado. La fila queda bloqueada
// hasta el fin de la transacción, así dos altas concurrentes nunca comparten número.
func (r *SequenceRepo) Next(ctx context.Context, kind domain.IDKind) (string, error) {
	query := `
		INSERT INTO secuencias (entidad, ultimo_valor) VALUES ($1, $2)
		ON CONFLICT (entidad) DO UPDATE SET ultimo_valor = secuencias.ultimo_valor + 1
		RETURNING ultimo_valor`
	var n int64
	if err := r.q.QueryRow(ctx, query, kind.Entity, kind.Start).Scan(&n); err != nil {
		return "", fmt.Errorf("next id %s: %w", kind.Entity, err)
	}
	return kind.Format(n), nil
}
