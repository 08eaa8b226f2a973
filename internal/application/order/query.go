package order

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

// QueryUseCase consultas de órdenes del comprador.
type QueryUseCase struct {
	repos    repository.Repos
	receipts ReceiptGenerator
}

func NewQueryUseCase(repos repository.Repos, receipts ReceiptGenerator) *QueryUseCase {
	return &QueryUseCase{repos: repos, receipts: receipts}
}

// List órdenes del usuario, más recientes primero.
func (uc *QueryUseCase) List(ctx context.Context, userID string, req dto.OrderListRequest) (*dto.OrderListResponse, error) {
	if req.Status != "" && !entity.ValidOrderStatus(req.Status) {
		return nil, domain.ErrInvalidOrderStatus
	}
	req.DefaultPage()
	orders, total, err := uc.repos.Orders.ListByUser(ctx, repository.OrderFilter{
		UserID: userID,
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.FromOrder(o))
	}
	return &dto.OrderListResponse{Orders: out, Pagination: dto.NewPagination(req.PageRequest, total)}, nil
}

// Detail orden con líneas y pago. Los administradores pueden ver cualquier orden.
func (uc *QueryUseCase) Detail(ctx context.Context, userID string, isAdmin bool, orderID string) (*dto.OrderDetailResponse, error) {
	order, err := uc.owned(ctx, userID, isAdmin, orderID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.repos.OrderLines.ListDetailsByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	payment, err := uc.repos.Payments.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.OrderDetailResponse{
		Order:   dto.FromOrder(order),
		Items:   make([]dto.OrderLineResponse, 0, len(lines)),
		Payment: dto.FromPayment(payment),
	}
	for _, l := range lines {
		resp.Items = append(resp.Items, dto.OrderLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			ProductTitle: l.ProductTitle,
			ProductBrand: l.ProductBrand,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			Subtotal:     l.Subtotal,
		})
		resp.Summary.TotalItems += l.Quantity
	}
	resp.Summary.TotalProducts = len(lines)
	return resp, nil
}

// Receipt genera el comprobante PDF de la orden.
func (uc *QueryUseCase) Receipt(ctx context.Context, userID string, isAdmin bool, orderID string) ([]byte, string, error) {
	if uc.receipts == nil {
		return nil, "", domain.ErrNotImplemented
	}
	order, err := uc.owned(ctx, userID, isAdmin, orderID)
	if err != nil {
		return nil, "", err
	}
	lines, err := uc.repos.OrderLines.ListDetailsByOrder(ctx, order.ID)
	if err != nil {
		return nil, "", err
	}
	payment, err := uc.repos.Payments.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, "", err
	}
	buyer, err := uc.repos.Users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.receipts.GenerateReceipt(ctx, ReceiptData{Order: order, Lines: lines, Payment: payment, Buyer: buyer})
	if err != nil {
		return nil, "", err
	}
	return pdf, order.ReceiptNumber + ".pdf", nil
}

func (uc *QueryUseCase) owned(ctx context.Context, userID string, isAdmin bool, orderID string) (*entity.Order, error) {
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (!isAdmin && order.UserID != userID) {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
