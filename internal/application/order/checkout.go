package order

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/inventory"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// CheckoutConfig límites del checkout. IdempotencyTTL aplica a la orden ya creada; mientras el
// checkout está en curso la clave vive PendingTTL (por defecto el doble del Timeout), así una caída
// del proceso no la deja bloqueada mucho tiempo.
type CheckoutConfig struct {
	Timeout        time.Duration
	IdempotencyTTL time.Duration
	PendingTTL     time.Duration
}

// CheckoutUseCase convierte el carrito activo en una orden pagada.
// Validación, creación de orden, líneas, descuento de stock, pago y cierre del carrito ocurren en
// una sola transacción: si algo falla no queda nada escrito.
type CheckoutUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	events   EventPublisher
	metrics  Metrics
	idem     IdempotencyStore
	clock    clock.Clock
	log      *logger.Logger
	cfg      CheckoutConfig
}

// NewCheckoutUseCase construye el caso de uso. events, metrics e idem pueden ser nil.
func NewCheckoutUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	events EventPublisher,
	metrics Metrics,
	idem IdempotencyStore,
	clk clock.Clock,
	log *logger.Logger,
	cfg CheckoutConfig,
) *CheckoutUseCase {
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
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = 2 * cfg.Timeout
	}
	return &CheckoutUseCase{
		txRunner: txRunner,
		repos:    repos,
		events:   events,
		metrics:  metrics,
		idem:     idem,
		clock:    clk,
		log:      log.Named("checkout"),
		cfg:      cfg,
	}
}

type pricedItem struct {
	item    *entity.CartItem
	product *entity.Product
}

// Checkout ejecuta la compra del carrito activo del usuario. idemKey es opcional: si se repite
// una clave ya completada se devuelve la misma orden con replayed=true.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest, idemKey string) (out *dto.CheckoutResponse, replayed bool, err error) {
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if in.ShippingAddress == "" || in.PaymentMethod == "" {
		uc.metrics.CheckoutFailed(failureReason(domain.ErrMissingFields))
		return nil, false, domain.ErrMissingFields
	}

	claimed := false
	if idemKey != "" && uc.idem != nil {
		ok, prevOrderID, err := uc.idem.Claim(ctx, userID, idemKey, uc.cfg.PendingTTL)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Str("usuario_id", userID).Msg("idempotencia no disponible, se continúa sin clave")
		case !ok && prevOrderID != "":
			resp, err := uc.replay(ctx, userID, prevOrderID)
			if err != nil {
				return nil, false, err
			}
			return resp, true, nil
		case !ok:
			return nil, false, domain.ErrIdempotencyInProgress
		default:
			claimed = true
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var (
		order   *entity.Order
		payment *entity.Payment
		lines   []EventItem
	)
	err = uc.txRunner.Run(txCtx, func(r repository.Repos) error {
		var err error
		order, payment, lines, err = uc.convert(txCtx, r, userID, in)
		return err
	})
	if err != nil {
		if claimed {
			if relErr := uc.idem.Release(ctx, userID, idemKey); relErr != nil {
				uc.log.Warn().Err(relErr).Msg("liberar clave de idempotencia")
			}
		}
		uc.metrics.CheckoutFailed(failureReason(err))
		return nil, false, err
	}

	if claimed {
		if err := uc.idem.Complete(ctx, userID, idemKey, order.ID, uc.cfg.IdempotencyTTL); err != nil {
			uc.log.Warn().Err(err).Str("orden_id", order.ID).Msg("guardar clave de idempotencia")
		}
	}
	uc.metrics.CheckoutSucceeded(order.Total, len(lines))
	uc.publish(ctx, OrderEvent{
		Type:       EventOrderCreated,
		OrderID:    order.ID,
		UserID:     userID,
		Status:     order.Status,
		Total:      order.Total,
		Items:      lines,
		OccurredAt: order.OrderedAt,
	})
	uc.log.Info().
		Str("orden_id", order.ID).
		Str("usuario_id", userID).
		Str("total", order.Total.String()).
		Int("items", len(lines)).
		Msg("checkout completado")

	return &dto.CheckoutResponse{
		Order:      dto.FromOrder(order),
		Payment:    *dto.FromPayment(payment),
		ItemsCount: len(lines),
	}, false, nil
}

// convert es el cuerpo transaccional del checkout.
func (uc *CheckoutUseCase) convert(ctx context.Context, r repository.Repos, userID string, in dto.CheckoutRequest) (*entity.Order, *entity.Payment, []EventItem, error) {
	cart, err := r.Carts.LockActiveByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	if cart == nil {
		return nil, nil, nil, domain.ErrNoActiveCart
	}
	items, err := r.CartItems.ListByCart(ctx, cart.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, nil, domain.ErrEmptyCart
	}
	// Orden fijo por producto para que dos checkouts concurrentes bloqueen filas en el mismo orden.
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	priced := make([]pricedItem, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		product, err := r.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, nil, nil, err
		}
		if !product.Purchasable() {
			return nil, nil, nil, &domain.ItemError{ProductID: it.ProductID, Err: domain.ErrProductNotAvailable}
		}
		inv, err := r.Inventory.GetByProductID(ctx, it.ProductID)
		if err != nil {
			return nil, nil, nil, err
		}
		if !inv.CanFulfill(it.Quantity) {
			available := 0
			if inv != nil {
				available = inv.Available
			}
			return nil, nil, nil, &domain.ItemError{ProductID: it.ProductID, Available: available, Err: domain.ErrInsufficientStock}
		}
		// Se cobra el precio vigente del producto, no el guardado en el carrito.
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		priced = append(priced, pricedItem{item: it, product: product})
	}

	now := uc.clock.Now()
	orderID, err := r.Sequences.Next(ctx, domain.KindOrder)
	if err != nil {
		return nil, nil, nil, err
	}
	order := &entity.Order{
		ID:              orderID,
		UserID:          userID,
		OrderedAt:       now,
		Total:           total,
		Status:          entity.OrderPending,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: in.ShippingAddress,
		Notes:           strings.TrimSpace(in.Notes),
		ReceiptNumber:   ReceiptNumber(orderID, now),
	}
	if err := r.Orders.Create(ctx, order); err != nil {
		return nil, nil, nil, err
	}

	events := make([]EventItem, 0, len(priced))
	for _, p := range priced {
		lineID, err := r.Sequences.Next(ctx, domain.KindOrderLine)
		if err != nil {
			return nil, nil, nil, err
		}
		line := &entity.OrderLine{
			ID:        lineID,
			OrderID:   orderID,
			ProductID: p.product.ID,
			Quantity:  p.item.Quantity,
			UnitPrice: p.product.Price,
			Subtotal:  p.product.Price.Mul(decimal.NewFromInt(int64(p.item.Quantity))),
		}
		if err := r.OrderLines.Create(ctx, line); err != nil {
			return nil, nil, nil, err
		}
		events = append(events, EventItem{ProductID: line.ProductID, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}

	for _, p := range priced {
		if err := inventory.TakeFromStock(ctx, r, p.product.ID, p.item.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil, nil, nil, &domain.ItemError{ProductID: p.product.ID, Err: domain.ErrInsufficientStock}
			}
			return nil, nil, nil, err
		}
	}

	paymentID, err := r.Sequences.Next(ctx, domain.KindPayment)
	if err != nil {
		return nil, nil, nil, err
	}
	payment := &entity.Payment{
		ID:              paymentID,
		OrderID:         orderID,
		Amount:          total,
		Method:          in.PaymentMethod,
		PaidAt:          now,
		Status:          entity.PaymentApproved,
		TransactionCode: TransactionCode(paymentID, now),
	}
	if err := r.Payments.Create(ctx, payment); err != nil {
		return nil, nil, nil, err
	}

	if err := r.CartItems.DeleteByCart(ctx, cart.ID); err != nil {
		return nil, nil, nil, err
	}
	if err := r.Carts.UpdateStatus(ctx, cart.ID, entity.CartConverted, now); err != nil {
		return nil, nil, nil, err
	}
	return order, payment, events, nil
}

func (uc *CheckoutUseCase) replay(ctx context.Context, userID, orderID string) (*dto.CheckoutResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	payment, err := uc.repos.Payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.repos.OrderLines.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CheckoutResponse{Order: dto.FromOrder(order), ItemsCount: len(lines)}
	if p := dto.FromPayment(payment); p != nil {
		resp.Payment = *p
	}
	uc.log.Info().Str("orden_id", orderID).Msg("checkout repetido con la misma clave")
	return resp, nil
}

func (uc *CheckoutUseCase) publish(ctx context.Context, evt OrderEvent) {
	if err := uc.events.Publish(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("orden_id", evt.OrderID).Str("evento", evt.Type).Msg("publicar evento")
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, domain.ErrNoActiveCart):
		return "no_active_cart"
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrProductNotAvailable):
		return "product_not_available"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return "internal"
}
