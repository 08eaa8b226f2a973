package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/inventory"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// ProductHandler catálogo público y administración de productos.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	ledger *inventory.LedgerUseCase
	log    *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, ledger *inventory.LedgerUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, ledger: ledger, log: log}
}

// List godoc
// @Summary      Listar productos activos
// @Tags         productos
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(10)
// @Param        categoria  query  string  false  "Categoría"
// @Param        estado     query  string  false  "Estado del producto"
// @Param        q          query  string  false  "Búsqueda (título, descripción, marca)"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ProductListResponse}
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var req dto.ProductListRequest
	if valid, err := bindQuery(c, &req); !valid {
		return err
	}
	out, err := h.uc.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Productos obtenidos exitosamente", out)
}

// GetByID godoc
// @Summary      Detalle de producto con inventario
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ProductDetailResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Producto obtenido exitosamente", out)
}

// Availability godoc
// @Summary      Consultar disponibilidad
// @Tags         productos
// @Produce      json
// @Param        id        path   string  true   "ID del producto"
// @Param        cantidad  query  int     false  "Cantidad"  default(1)
// @Success      200  {object}  dto.SuccessResponse{data=dto.AvailabilityResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/disponibilidad [get]
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	out, err := h.ledger.CheckAvailability(c.UserContext(), c.Params("id"), c.QueryInt("cantidad", 1))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Disponibilidad consultada", out)
}

// Create godoc
// @Summary      Publicar producto (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ProductDetailResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, "Producto creado exitosamente", out)
}

// Update godoc
// @Summary      Editar producto (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SuccessResponse{data=dto.ProductResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Producto actualizado exitosamente", out)
}

// Delete godoc
// @Summary      Desactivar producto (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Producto eliminado exitosamente", nil)
}
