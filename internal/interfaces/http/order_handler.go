package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/order"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

const (
	idempotencyHeader        = "Idempotency-Key"
	missingCheckoutFieldsMsg = "La dirección de envío y método de pago son requeridos"
)

// OrderHandler checkout, cancelación y consulta de órdenes.
type OrderHandler struct {
	checkout *order.CheckoutUseCase
	cancel   *order.CancelUseCase
	query    *order.QueryUseCase
	status   *order.StatusUseCase
	log      *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(checkout *order.CheckoutUseCase, cancel *order.CancelUseCase, query *order.QueryUseCase, status *order.StatusUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, cancel: cancel, query: query, status: status, log: log}
}

// Checkout godoc
// @Summary      Convertir el carrito activo en orden
// @Description  Valida stock, crea orden, líneas y pago, descuenta inventario y cierra el carrito en una transacción.
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string               false  "Clave de idempotencia"
// @Param        body             body    dto.CheckoutRequest  true   "Dirección, método de pago y notas"
// @Success      201  {object}  dto.SuccessResponse{data=dto.CheckoutResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Cuerpo de la solicitud inválido")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" || strings.TrimSpace(in.PaymentMethod) == "" {
		return fail(c, fiber.StatusBadRequest, "MISSING_REQUIRED_FIELDS", missingCheckoutFieldsMsg)
	}
	if valid, err := validateStruct(c, &in); !valid {
		return err
	}

	out, replayed, err := h.checkout.Checkout(c.UserContext(), GetUserID(c), in, strings.TrimSpace(c.Get(idempotencyHeader)))
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			return fail(c, fiber.StatusBadRequest, "MISSING_REQUIRED_FIELDS", missingCheckoutFieldsMsg)
		}
		return respondError(c, h.log, err)
	}
	if replayed {
		return ok(c, fiber.StatusOK, "Orden creada exitosamente", out)
	}
	return ok(c, fiber.StatusCreated, "Orden creada exitosamente", out)
}

// Cancel godoc
// @Summary      Cancelar una orden
// @Description  Solo órdenes propias en estado pendiente o confirmada. Devuelve el stock y reembolsa el pago.
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true   "ID de la orden"
// @Param        body  body  dto.CancelOrderRequest  false  "Motivo"
// @Success      200   {object}  dto.SuccessResponse{data=dto.OrderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/cancelar [put]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if len(c.Body()) > 0 {
		if valid, err := bindJSON(c, &in); !valid {
			return err
		}
	}
	out, err := h.cancel.Cancel(c.UserContext(), GetUserID(c), c.Params("id"), strings.TrimSpace(in.Reason))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Orden cancelada exitosamente", out)
}

// List godoc
// @Summary      Órdenes del usuario
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        estado  query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.SuccessResponse{data=dto.OrderListResponse}
// @Router       /api/ordenes [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var req dto.OrderListRequest
	if valid, err := bindQuery(c, &req); !valid {
		return err
	}
	out, err := h.query.List(c.UserContext(), GetUserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Órdenes obtenidas exitosamente", out)
}

// Detail godoc
// @Summary      Detalle de una orden
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SuccessResponse{data=dto.OrderDetailResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [get]
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	out, err := h.query.Detail(c.UserContext(), GetUserID(c), isAdmin(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Detalle de orden obtenido exitosamente", out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la orden
// @Tags         ordenes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/comprobante [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.query.Receipt(c.UserContext(), GetUserID(c), isAdmin(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}

// UpdateStatus godoc
// @Summary      Avanzar estado de una orden (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SuccessResponse{data=dto.OrderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/ordenes/{id}/estado [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.status.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Estado de la orden actualizado", out)
}
