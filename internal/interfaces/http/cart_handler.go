package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/cart"
	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// CartHandler carrito del usuario autenticado.
type CartHandler struct {
	uc  *cart.CartUseCase
	log *logger.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.CartUseCase, log *logger.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

// View godoc
// @Summary      Ver carrito activo
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=dto.CartViewResponse}
// @Router       /api/carrito [get]
func (h *CartHandler) View(c *fiber.Ctx) error {
	out, err := h.uc.View(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Carrito obtenido exitosamente", out)
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito se suma la cantidad.
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.SuccessResponse{data=dto.CartItemResponse}
// @Success      200   {object}  dto.SuccessResponse{data=dto.CartItemResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carrito/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	item, created, err := h.uc.AddItem(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if created {
		return ok(c, fiber.StatusCreated, "Producto agregado al carrito exitosamente", item)
	}
	return ok(c, fiber.StatusOK, "Cantidad actualizada en el carrito", item)
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del item"
// @Param        body  body  dto.UpdateCartItemRequest  true  "Cantidad"
// @Success      200   {object}  dto.SuccessResponse{data=dto.CartItemResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/carrito/items/{id} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	item, err := h.uc.UpdateItem(c.UserContext(), GetUserID(c), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Item actualizado exitosamente", item)
}

// RemoveItem godoc
// @Summary      Quitar una línea
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Producto eliminado del carrito", nil)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/carrito [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Carrito vaciado exitosamente", nil)
}
