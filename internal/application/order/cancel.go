package order

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/inventory"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// CancelUseCase cancela órdenes pendientes o confirmadas y devuelve su stock.
type CancelUseCase struct {
	txRunner repository.TxRunner
	events   EventPublisher
	metrics  Metrics
	clock    clock.Clock
	log      *logger.Logger
}

func NewCancelUseCase(txRunner repository.TxRunner, events EventPublisher, metrics Metrics, clk clock.Clock, log *logger.Logger) *CancelUseCase {
	if events == nil {
		events = noopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CancelUseCase{txRunner: txRunner, events: events, metrics: metrics, clock: clk, log: log.Named("cancelacion")}
}

// Cancel cancela la orden orderID del usuario. Una orden ajena se reporta como inexistente.
func (uc *CancelUseCase) Cancel(ctx context.Context, userID, orderID, reason string) (*dto.OrderResponse, error) {
	reason = strings.TrimSpace(reason)

	var (
		order *entity.Order
		items []EventItem
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		o, err := r.Orders.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil || o.UserID != userID {
			return domain.ErrOrderNotFound
		}
		if !o.Cancellable() {
			return domain.ErrCannotCancelOrder
		}
		lines, err := r.OrderLines.ListByOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
		for _, l := range lines {
			if err := inventory.ReturnToStock(ctx, r, l.ProductID, l.Quantity); err != nil {
				return err
			}
			items = append(items, EventItem{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
		}
		if err := r.Orders.UpdateStatus(ctx, o.ID, entity.OrderCancelled); err != nil {
			return err
		}
		if err := r.Payments.UpdateStatusByOrder(ctx, o.ID, entity.PaymentRefunded); err != nil {
			return err
		}
		o.Status = entity.OrderCancelled
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.OrderCancelled()
	if err := uc.events.Publish(ctx, OrderEvent{
		Type:       EventOrderCancelled,
		OrderID:    order.ID,
		UserID:     userID,
		Status:     order.Status,
		Total:      order.Total,
		Items:      items,
		Reason:     reason,
		OccurredAt: uc.clock.Now(),
	}); err != nil {
		uc.log.Warn().Err(err).Str("orden_id", order.ID).Msg("publicar evento de cancelación")
	}
	uc.log.Info().Str("orden_id", order.ID).Str("motivo", reason).Msg("orden cancelada")

	resp := dto.FromOrder(order)
	return &resp, nil
}
