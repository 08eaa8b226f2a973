package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain"
)

// SequenceRepository entrega el siguiente identificador de una entidad.
// Dentro de una transacción el valor solo se consume si la transacción confirma.
type SequenceRepository interface {
	Next(ctx context.Context, kind domain.IDKind) (string, error)
}
