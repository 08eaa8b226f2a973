package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// ReturnUseCase solicitudes de devolución sobre órdenes enviadas o entregadas.
type ReturnUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
	log      *logger.Logger
}

func NewReturnUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock, log *logger.Logger) *ReturnUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReturnUseCase{txRunner: txRunner, repos: repos, clock: clk, log: log.Named("devoluciones")}
}

// Create registra la devolución de un producto de la orden. El reembolso es el subtotal de la línea.
func (uc *ReturnUseCase) Create(ctx context.Context, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.OrderID == "" || in.ProductID == "" || reason == "" {
		return nil, domain.ErrMissingFields
	}
	var ret *entity.ReturnRequest
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		order, err := r.Orders.GetByID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID {
			return domain.ErrOrderNotFound
		}
		if !order.Returnable() {
			return domain.ErrInvalidOrderStatus
		}
		lines, err := r.OrderLines.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		var line *entity.OrderLine
		for _, l := range lines {
			if l.ProductID == in.ProductID {
				line = l
				break
			}
		}
		if line == nil {
			return domain.ErrProductNotInOrder
		}
		id, err := r.Sequences.Next(ctx, domain.KindReturn)
		if err != nil {
			return err
		}
		ret = &entity.ReturnRequest{
			ID:           id,
			OrderID:      order.ID,
			ProductID:    in.ProductID,
			UserID:       userID,
			Reason:       reason,
			Status:       entity.ReturnRequested,
			RequestedAt:  uc.clock.Now(),
			RefundAmount: line.Subtotal,
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrReturnAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("devolucion_id", ret.ID).Str("orden_id", ret.OrderID).Msg("devolución solicitada")
	resp := dto.FromReturn(ret)
	return &resp, nil
}

func (uc *ReturnUseCase) List(ctx context.Context, userID string, req dto.ReturnListRequest) (*dto.ReturnListResponse, error) {
	req.DefaultPage()
	list, total, err := uc.repos.Returns.ListByUser(ctx, repository.ReturnFilter{
		UserID: userID,
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnResponse, 0, len(list))
	for _, ret := range list {
		out = append(out, dto.FromReturn(ret))
	}
	return &dto.ReturnListResponse{Returns: out, Pagination: dto.NewPagination(req.PageRequest, total)}, nil
}

func (uc *ReturnUseCase) Get(ctx context.Context, userID, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.repos.Returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil || ret.UserID != userID {
		return nil, domain.ErrReturnNotFound
	}
	resp := dto.FromReturn(ret)
	return &resp, nil
}
