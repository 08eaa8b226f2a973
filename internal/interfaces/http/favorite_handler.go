package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// FavoriteHandler lista de deseos del usuario.
type FavoriteHandler struct {
	uc  *usecase.FavoriteUseCase
	log *logger.Logger
}

func NewFavoriteHandler(uc *usecase.FavoriteUseCase, log *logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Favoritos del usuario
// @Tags         favoritos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.FavoriteResponse}
// @Router       /api/favoritos [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Favoritos obtenidos exitosamente", out)
}

// Add godoc
// @Summary      Agregar a favoritos
// @Tags         favoritos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddFavoriteRequest  true  "Producto"
// @Success      201   {object}  dto.SuccessResponse{data=dto.FavoriteResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/favoritos [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var in dto.AddFavoriteRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Add(c.UserContext(), GetUserID(c), in.ProductID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, "Producto agregado a favoritos", out)
}

// Remove godoc
// @Summary      Quitar de favoritos
// @Tags         favoritos
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/favoritos/{producto_id} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), GetUserID(c), c.Params("producto_id")); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Producto eliminado de favoritos", nil)
}

// Check godoc
// @Summary      Verificar si un producto está en favoritos
// @Tags         favoritos
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse{data=dto.FavoriteCheckResponse}
// @Router       /api/favoritos/verificar/{producto_id} [get]
func (h *FavoriteHandler) Check(c *fiber.Ctx) error {
	out, err := h.uc.Check(c.UserContext(), GetUserID(c), c.Params("producto_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Verificación completada", out)
}
