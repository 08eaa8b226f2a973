package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// ShipmentHandler despacho y seguimiento de envíos.
type ShipmentHandler struct {
	uc  *usecase.ShipmentUseCase
	log *logger.Logger
}

func NewShipmentHandler(uc *usecase.ShipmentUseCase, log *logger.Logger) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Despachar orden confirmada (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Datos del envío"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ShipmentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/envios [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, "Envío creado exitosamente", out)
}

// Deliver godoc
// @Summary      Marcar envío entregado (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del envío"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ShipmentResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/envios/{id}/entregar [put]
func (h *ShipmentHandler) Deliver(c *fiber.Ctx) error {
	out, err := h.uc.Deliver(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Envío marcado como entregado", out)
}

// Track godoc
// @Summary      Rastrear envío por número de seguimiento
// @Tags         envios
// @Produce      json
// @Param        numero  path  string  true  "Número de seguimiento"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ShipmentResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/envios/rastrear/{numero} [get]
func (h *ShipmentHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.Track(c.UserContext(), c.Params("numero"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Información de rastreo obtenida", out)
}

// List godoc
// @Summary      Envíos del usuario
// @Tags         envios
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {object}  dto.SuccessResponse{data=dto.ShipmentListResponse}
// @Router       /api/envios [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	var req dto.PageRequest
	if valid, err := bindQuery(c, &req); !valid {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Envíos obtenidos exitosamente", out)
}

// Get godoc
// @Summary      Detalle de envío
// @Tags         envios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del envío"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ShipmentResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/envios/{id} [get]
func (h *ShipmentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), isAdmin(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Envío obtenido exitosamente", out)
}
