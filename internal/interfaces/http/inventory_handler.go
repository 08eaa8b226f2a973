package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/inventory"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// InventoryHandler operaciones administrativas del libro de existencias.
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, log: log}
}

// Get godoc
// @Summary      Inventario de un producto (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse{data=dto.InventoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/{producto_id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.ledger.Get(c.UserContext(), c.Params("producto_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Inventario obtenido exitosamente", out)
}

// Restock godoc
// @Summary      Reabastecer (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        producto_id  path  string               true  "ID del producto"
// @Param        body         body  dto.QuantityRequest  true  "cantidad"
// @Success      200  {object}  dto.SuccessResponse{data=dto.InventoryResponse}
// @Router       /api/admin/inventario/{producto_id}/reabastecer [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	return h.withQuantity(c, h.ledger.Restock, "Inventario reabastecido exitosamente")
}

// Reserve godoc
// @Summary      Reservar unidades (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        producto_id  path  string               true  "ID del producto"
// @Param        body         body  dto.QuantityRequest  true  "cantidad"
// @Success      200  {object}  dto.SuccessResponse{data=dto.InventoryResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/{producto_id}/reservas [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	return h.withQuantity(c, h.ledger.Reserve, "Unidades reservadas exitosamente")
}

// ReleaseReservation godoc
// @Summary      Liberar una reserva (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        producto_id  path  string               true  "ID del producto"
// @Param        body         body  dto.QuantityRequest  true  "cantidad"
// @Success      200  {object}  dto.SuccessResponse{data=dto.InventoryResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/{producto_id}/reservas [delete]
func (h *InventoryHandler) ReleaseReservation(c *fiber.Ctx) error {
	return h.withQuantity(c, h.ledger.ReleaseReservation, "Reserva liberada exitosamente")
}

type quantityOp func(ctx context.Context, productID string, qty int) (*dto.InventoryResponse, error)

func (h *InventoryHandler) withQuantity(c *fiber.Ctx, op quantityOp, mensaje string) error {
	var in dto.QuantityRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := op(c.UserContext(), c.Params("producto_id"), in.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, mensaje, out)
}
