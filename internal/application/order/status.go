package order

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// StatusUseCase avance administrativo del estado de una orden.
type StatusUseCase struct {
	txRunner repository.TxRunner
	log      *logger.Logger
}

func NewStatusUseCase(txRunner repository.TxRunner, log *logger.Logger) *StatusUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StatusUseCase{txRunner: txRunner, log: log.Named("estado_orden")}
}

// UpdateStatus confirma una orden pendiente. Enviada y entregada se fijan al crear
// y entregar el envío; cancelar tampoco es un cambio de estado administrativo.
func (uc *StatusUseCase) UpdateStatus(ctx context.Context, orderID, next string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(next) || next == entity.OrderCancelled || next == entity.OrderPending {
		return nil, domain.ErrInvalidOrderStatus
	}
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		o, err := r.Orders.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if !o.CanTransitionTo(next) {
			return domain.ErrInvalidStatusTransition
		}
		if err := r.Orders.UpdateStatus(ctx, o.ID, next); err != nil {
			return err
		}
		o.Status = next
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("orden_id", order.ID).Str("estado", next).Msg("estado de orden actualizado")
	resp := dto.FromOrder(order)
	return &resp, nil
}
