package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// CategoryHandler categorías del catálogo.
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log *logger.Logger
}

func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar categorías activas
// @Tags         productos
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.CategoryResponse}
// @Router       /api/categorias [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Categorías obtenidas exitosamente", out)
}

// Get godoc
// @Summary      Detalle de una categoría activa
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Categoría obtenida exitosamente", out)
}

// Create godoc
// @Summary      Crear categoría (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.SuccessResponse{data=dto.CategoryResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/categorias [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, "Categoría creada exitosamente", out)
}
