package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// ReviewHandler reseñas de productos.
type ReviewHandler struct {
	uc  *usecase.ReviewUseCase
	log *logger.Logger
}

func NewReviewHandler(uc *usecase.ReviewUseCase, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, log: log}
}

// Upsert godoc
// @Summary      Crear o editar reseña
// @Description  Una reseña por usuario y producto; editarla la deja pendiente de aprobación.
// @Tags         resenas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.UpsertReviewRequest  true  "Puntuación y comentario"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ReviewResponse}
// @Success      200   {object}  dto.SuccessResponse{data=dto.ReviewResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/resenas [put]
func (h *ReviewHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Cuerpo de la solicitud inválido")
	}
	out, created, err := h.uc.Upsert(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if created {
		return ok(c, fiber.StatusCreated, "Reseña creada exitosamente", out)
	}
	return ok(c, fiber.StatusOK, "Reseña actualizada exitosamente", out)
}

// ListByProduct godoc
// @Summary      Reseñas aprobadas de un producto
// @Tags         resenas
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ProductReviewsResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/resenas [get]
func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Reseñas obtenidas exitosamente", out)
}

// Mine godoc
// @Summary      Mi reseña de un producto
// @Tags         resenas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse{data=dto.MyReviewResponse}
// @Router       /api/productos/{id}/resenas/mi-resena [get]
func (h *ReviewHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.Mine(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out.Review == nil {
		return ok(c, fiber.StatusOK, "No tienes reseña para este producto", out)
	}
	return ok(c, fiber.StatusOK, "Tu reseña obtenida exitosamente", out)
}

// DeleteMine godoc
// @Summary      Eliminar mi reseña de un producto
// @Tags         resenas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/resenas/mi-resena [delete]
func (h *ReviewHandler) DeleteMine(c *fiber.Ctx) error {
	if err := h.uc.DeleteMine(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Reseña eliminada exitosamente", nil)
}

// Approve godoc
// @Summary      Aprobar reseña (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reseña"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/resenas/{id}/aprobar [put]
func (h *ReviewHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.Approve(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Reseña aprobada exitosamente", nil)
}
