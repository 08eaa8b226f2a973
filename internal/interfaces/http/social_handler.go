package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// PostHandler publicaciones de la comunidad.
type PostHandler struct {
	uc  *usecase.PostUseCase
	log *logger.Logger
}

func NewPostHandler(uc *usecase.PostUseCase, log *logger.Logger) *PostHandler {
	return &PostHandler{uc: uc, log: log}
}

// Feed godoc
// @Summary      Feed de publicaciones
// @Tags         comunidad
// @Produce      json
// @Param        usuario_id  query  string  false  "Solo publicaciones de este usuario"
// @Success      200  {object}  dto.SuccessResponse{data=dto.FeedResponse}
// @Router       /api/publicaciones [get]
func (h *PostHandler) Feed(c *fiber.Ctx) error {
	out, err := h.uc.Feed(c.UserContext(), c.Query("usuario_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Feed obtenido exitosamente", out)
}

// Create godoc
// @Summary      Crear publicación
// @Tags         comunidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePostRequest  true  "Contenido, imágenes y producto opcional"
// @Success      201   {object}  dto.SuccessResponse{data=dto.PostResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/publicaciones [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePostRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, "Publicación creada exitosamente", out)
}

// Get godoc
// @Summary      Detalle de publicación
// @Tags         comunidad
// @Produce      json
// @Param        id   path  string  true  "ID de la publicación"
// @Success      200  {object}  dto.SuccessResponse{data=dto.PostDetailResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/publicaciones/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Detalle de publicación obtenido exitosamente", out)
}

// Update godoc
// @Summary      Editar publicación propia
// @Tags         comunidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la publicación"
// @Param        body  body  dto.UpdatePostRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.SuccessResponse{data=dto.PostResponse}
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/publicaciones/{id} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePostRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Publicación actualizada exitosamente", out)
}

// Delete godoc
// @Summary      Eliminar publicación propia
// @Tags         comunidad
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la publicación"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/publicaciones/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Publicación eliminada exitosamente", nil)
}

// CommentHandler comentarios de publicaciones.
type CommentHandler struct {
	uc  *usecase.CommentUseCase
	log *logger.Logger
}

func NewCommentHandler(uc *usecase.CommentUseCase, log *logger.Logger) *CommentHandler {
	return &CommentHandler{uc: uc, log: log}
}

// ListByPost godoc
// @Summary      Comentarios de una publicación
// @Tags         comunidad
// @Produce      json
// @Param        id   path  string  true  "ID de la publicación"
// @Success      200  {object}  dto.SuccessResponse{data=dto.CommentListResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/publicaciones/{id}/comentarios [get]
func (h *CommentHandler) ListByPost(c *fiber.Ctx) error {
	out, err := h.uc.ListByPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Comentarios obtenidos exitosamente", out)
}

// Create godoc
// @Summary      Comentar una publicación
// @Tags         comunidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la publicación"
// @Param        body  body  dto.CommentRequest  true  "Contenido"
// @Success      201   {object}  dto.SuccessResponse{data=dto.CommentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/publicaciones/{id}/comentarios [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var in dto.CommentRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, "Comentario añadido exitosamente", out)
}

// Update godoc
// @Summary      Editar comentario propio
// @Tags         comunidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del comentario"
// @Param        body  body  dto.CommentRequest  true  "Contenido"
// @Success      200   {object}  dto.SuccessResponse{data=dto.CommentResponse}
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/comentarios/{id} [put]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	var in dto.CommentRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Comentario actualizado exitosamente", out)
}

// Delete godoc
// @Summary      Eliminar comentario propio
// @Tags         comunidad
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comentario"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comentarios/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Comentario eliminado exitosamente", nil)
}

// ReactionHandler reacciones; kind fija la entidad (post o comentario) de las rutas que atiende.
type ReactionHandler struct {
	uc   *usecase.ReactionUseCase
	kind string
	log  *logger.Logger
}

func NewReactionHandler(uc *usecase.ReactionUseCase, kind string, log *logger.Logger) *ReactionHandler {
	return &ReactionHandler{uc: uc, kind: kind, log: log}
}

// Toggle godoc
// @Summary      Reaccionar
// @Description  Repetir el mismo tipo quita la reacción; otro tipo la cambia.
// @Tags         comunidad
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la publicación o comentario"
// @Param        body  body  dto.ReactRequest  true  "like, love, genial, wow, sad o angry"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ReactResultResponse}
// @Success      200   {object}  dto.SuccessResponse{data=dto.ReactResultResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/publicaciones/{id}/reacciones [post]
// @Router       /api/comentarios/{id}/reacciones [post]
func (h *ReactionHandler) Toggle(c *fiber.Ctx) error {
	var in dto.ReactRequest
	if valid, err := bindJSON(c, &in); !valid {
		return err
	}
	out, err := h.uc.Toggle(c.UserContext(), GetUserID(c), h.kind, c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	switch out.Action {
	case dto.ReactionAdded:
		return ok(c, fiber.StatusCreated, "Reacción añadida exitosamente", out)
	case dto.ReactionChanged:
		return ok(c, fiber.StatusOK, "Reacción actualizada exitosamente", out)
	default:
		return ok(c, fiber.StatusOK, "Reacción eliminada exitosamente", out)
	}
}

// Summary godoc
// @Summary      Reacciones agrupadas
// @Description  mi_reaccion solo se informa si la petición trae un token válido.
// @Tags         comunidad
// @Produce      json
// @Param        id   path  string  true  "ID de la publicación o comentario"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ReactionSummaryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/publicaciones/{id}/reacciones [get]
// @Router       /api/comentarios/{id}/reacciones [get]
func (h *ReactionHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetUserID(c), h.kind, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, "Reacciones obtenidas exitosamente", out)
}
