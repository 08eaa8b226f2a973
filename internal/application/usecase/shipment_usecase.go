package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

const defaultEstimatedDays = 5

// ShipmentUseCase despacho y seguimiento de órdenes.
type ShipmentUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
	log      *logger.Logger
}

func NewShipmentUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock, log *logger.Logger) *ShipmentUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ShipmentUseCase{txRunner: txRunner, repos: repos, clock: clk, log: log.Named("envios")}
}

// TrackingNumber TRK-<últimos 5 dígitos del instante en ms><número del envío>.
func TrackingNumber(shipmentID string, at time.Time) string {
	return fmt.Sprintf("TRK-%05d%s", at.UnixMilli()%100000, domain.Digits(shipmentID))
}

// Create despacha una orden confirmada: crea el envío en tránsito y pasa la orden a enviada.
func (uc *ShipmentUseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	carrier := strings.TrimSpace(in.Carrier)
	if in.OrderID == "" || carrier == "" {
		return nil, domain.ErrMissingFields
	}
	if in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	days := in.EstimatedDays
	if days <= 0 {
		days = defaultEstimatedDays
	}

	var sh *entity.Shipment
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		order, err := r.Orders.LockByID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		existing, err := r.Shipments.GetByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrShipmentAlreadyExists
		}
		if order.Status != entity.OrderConfirmed {
			return domain.ErrInvalidOrderStatus
		}
		id, err := r.Sequences.Next(ctx, domain.KindShipment)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		sh = &entity.Shipment{
			ID:             id,
			OrderID:        order.ID,
			Carrier:        carrier,
			TrackingNumber: TrackingNumber(id, now),
			ShippedAt:      now,
			EstimatedAt:    now.AddDate(0, 0, days),
			Status:         entity.ShipmentInTransit,
			Cost:           in.Cost,
		}
		if err := r.Shipments.Create(ctx, sh); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrShipmentAlreadyExists
			}
			return err
		}
		return r.Orders.UpdateStatus(ctx, order.ID, entity.OrderShipped)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("envio_id", sh.ID).Str("orden_id", sh.OrderID).Str("seguimiento", sh.TrackingNumber).Msg("orden despachada")
	resp := dto.FromShipment(sh)
	return &resp, nil
}

// Deliver marca el envío como entregado y la orden como entregada.
func (uc *ShipmentUseCase) Deliver(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	var sh *entity.Shipment
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		s, err := r.Shipments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrShipmentNotFound
		}
		if s.Status == entity.ShipmentDelivered {
			return domain.ErrConflict
		}
		order, err := r.Orders.LockByID(ctx, s.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status != entity.OrderShipped {
			return domain.ErrInvalidOrderStatus
		}
		if err := r.Shipments.UpdateStatus(ctx, s.ID, entity.ShipmentDelivered); err != nil {
			return err
		}
		if err := r.Orders.UpdateStatus(ctx, s.OrderID, entity.OrderDelivered); err != nil {
			return err
		}
		s.Status = entity.ShipmentDelivered
		sh = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromShipment(sh)
	return &resp, nil
}

// Track consulta pública por número de seguimiento.
func (uc *ShipmentUseCase) Track(ctx context.Context, tracking string) (*dto.ShipmentResponse, error) {
	sh, err := uc.repos.Shipments.GetByTracking(ctx, strings.TrimSpace(tracking))
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrTrackingNotFound
	}
	resp := dto.FromShipment(sh)
	return &resp, nil
}

func (uc *ShipmentUseCase) List(ctx context.Context, userID string, req dto.PageRequest) (*dto.ShipmentListResponse, error) {
	req.DefaultPage()
	list, total, err := uc.repos.Shipments.ListByUser(ctx, userID, req.Limit, req.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentResponse, 0, len(list))
	for _, sh := range list {
		out = append(out, dto.FromShipment(sh))
	}
	return &dto.ShipmentListResponse{Shipments: out, Pagination: dto.NewPagination(req, total)}, nil
}

// Get envío de una orden del usuario; los administradores ven cualquiera.
func (uc *ShipmentUseCase) Get(ctx context.Context, userID string, isAdmin bool, id string) (*dto.ShipmentResponse, error) {
	sh, err := uc.repos.Shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrShipmentNotFound
	}
	if !isAdmin {
		order, err := uc.repos.Orders.GetByID(ctx, sh.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil || order.UserID != userID {
			return nil, domain.ErrShipmentNotFound
		}
	}
	resp := dto.FromShipment(sh)
	return &resp, nil
}
