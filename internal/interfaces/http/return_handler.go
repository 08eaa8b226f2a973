package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// ReturnHandler solicitudes de devolución.
type ReturnHandler struct {
	uc  *usecase.ReturnUseCase
	log *logger.Logger
}

func NewReturnHandler(uc *usecase.ReturnUseCase, log *logger.Logger) *ReturnHandler {
	return &ReturnHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Solicitar devolución
// @Tags         devoluciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "Orden, producto y motivo"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ReturnResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devoluciones [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, "Solicitud de devolución creada exitosamente", out)
}

// List godoc
// @Summary      Devoluciones del usuario
// @Tags         devoluciones
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        estado  query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ReturnListResponse}
// @Router       /api/devoluciones [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	var req dto.ReturnListRequest
	if valid, err := bindQuery(c, &req); !valid {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Devoluciones obtenidas exitosamente", out)
}

// Get godoc
// @Summary      Detalle de devolución
// @Tags         devoluciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ReturnResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devoluciones/{id} [get]
func (h *ReturnHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Devolución obtenida exitosamente", out)
}
