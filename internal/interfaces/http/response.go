package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

func ok(c *fiber.Ctx, status int, mensaje string, data interface{}) error {
	return c.Status(status).JSON(dto.SuccessResponse{Exito: true, Mensaje: mensaje, Data: data})
}

func fail(c *fiber.Ctx, status int, codigo, mensaje string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Mensaje: mensaje, Codigo: codigo})
}

type errorMapping struct {
	status  int
	codigo  string
	mensaje string
}

// Tabla única sentinel -> respuesta HTTP. El orden importa: se evalúa con errors.Is de arriba abajo.
var errorTable = []struct {
	err error
	errorMapping
}{
	{domain.ErrMissingFields, errorMapping{fiber.StatusBadRequest, "MISSING_REQUIRED_FIELDS", "Faltan campos obligatorios"}},
	{domain.ErrInvalidInput, errorMapping{fiber.StatusBadRequest, "VALIDATION_ERROR", "Datos de entrada inválidos"}},
	{domain.ErrInvalidQuantity, errorMapping{fiber.StatusBadRequest, "INVALID_QUANTITY", "La cantidad debe estar entre 1 y 99"}},
	{domain.ErrInvalidCategory, errorMapping{fiber.StatusBadRequest, "INVALID_CATEGORY", "La categoría no existe o está inactiva"}},
	{domain.ErrInvalidRating, errorMapping{fiber.StatusBadRequest, "INVALID_RATING", "La puntuación debe estar entre 1 y 5"}},
	{domain.ErrNoActiveCart, errorMapping{fiber.StatusBadRequest, "NO_ACTIVE_CART", "No hay un carrito activo"}},
	{domain.ErrEmptyCart, errorMapping{fiber.StatusBadRequest, "EMPTY_CART", "El carrito está vacío"}},
	{domain.ErrProductNotAvailable, errorMapping{fiber.StatusBadRequest, "PRODUCT_NOT_AVAILABLE", "Producto no disponible"}},
	{domain.ErrInsufficientStock, errorMapping{fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "Stock insuficiente"}},
	{domain.ErrCannotCancelOrder, errorMapping{fiber.StatusBadRequest, "CANNOT_CANCEL_ORDER", "La orden no se puede cancelar en su estado actual"}},
	{domain.ErrInvalidStatusTransition, errorMapping{fiber.StatusBadRequest, "INVALID_STATUS_TRANSITION", "Transición de estado no permitida"}},
	{domain.ErrInvalidOrderStatus, errorMapping{fiber.StatusBadRequest, "INVALID_ORDER_STATUS", "El estado de la orden no permite esta operación"}},
	{domain.ErrProductNotInOrder, errorMapping{fiber.StatusBadRequest, "PRODUCT_NOT_IN_ORDER", "El producto no pertenece a la orden"}},
	{domain.ErrAlreadyInFavorites, errorMapping{fiber.StatusBadRequest, "ALREADY_IN_FAVORITES", "El producto ya está en favoritos"}},
	{domain.ErrMissingContent, errorMapping{fiber.StatusBadRequest, "MISSING_CONTENT", "El contenido es requerido"}},
	{domain.ErrEmptyContent, errorMapping{fiber.StatusBadRequest, "EMPTY_CONTENT", "El contenido no puede estar vacío"}},
	{domain.ErrInvalidReactionType, errorMapping{fiber.StatusBadRequest, "INVALID_REACTION_TYPE", "El tipo de reacción debe ser uno de: like, love, genial, wow, sad, angry"}},

	{domain.ErrInvalidCredentials, errorMapping{fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciales inválidas"}},
	{domain.ErrUnauthorized, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED", "No autorizado"}},
	{domain.ErrAccountDisabled, errorMapping{fiber.StatusForbidden, "ACCOUNT_DISABLED", "La cuenta está desactivada"}},
	{domain.ErrForbidden, errorMapping{fiber.StatusForbidden, "ACCESS_DENIED", "Acceso denegado"}},

	{domain.ErrUserNotFound, errorMapping{fiber.StatusNotFound, "USER_NOT_FOUND", "Usuario no encontrado"}},
	{domain.ErrProductNotFound, errorMapping{fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "Producto no encontrado"}},
	{domain.ErrCategoryNotFound, errorMapping{fiber.StatusNotFound, "CATEGORY_NOT_FOUND", "Categoría no encontrada"}},
	{domain.ErrInventoryNotFound, errorMapping{fiber.StatusNotFound, "INVENTORY_NOT_FOUND", "Inventario no encontrado"}},
	{domain.ErrCartItemNotFound, errorMapping{fiber.StatusNotFound, "CART_ITEM_NOT_FOUND", "Item del carrito no encontrado"}},
	{domain.ErrOrderNotFound, errorMapping{fiber.StatusNotFound, "ORDER_NOT_FOUND", "Orden no encontrada"}},
	{domain.ErrShipmentNotFound, errorMapping{fiber.StatusNotFound, "SHIPMENT_NOT_FOUND", "Envío no encontrado"}},
	{domain.ErrTrackingNotFound, errorMapping{fiber.StatusNotFound, "TRACKING_NOT_FOUND", "Número de seguimiento no encontrado"}},
	{domain.ErrReturnNotFound, errorMapping{fiber.StatusNotFound, "RETURN_NOT_FOUND", "Devolución no encontrada"}},
	{domain.ErrFavoriteNotFound, errorMapping{fiber.StatusNotFound, "FAVORITE_NOT_FOUND", "Favorito no encontrado"}},
	{domain.ErrReviewNotFound, errorMapping{fiber.StatusNotFound, "REVIEW_NOT_FOUND", "Reseña no encontrada"}},
	{domain.ErrPostNotFound, errorMapping{fiber.StatusNotFound, "POST_NOT_FOUND", "Publicación no encontrada"}},
	{domain.ErrCommentNotFound, errorMapping{fiber.StatusNotFound, "COMMENT_NOT_FOUND", "Comentario no encontrado"}},
	{domain.ErrNotFound, errorMapping{fiber.StatusNotFound, "NOT_FOUND", "Recurso no encontrado"}},

	{domain.ErrEmailAlreadyExists, errorMapping{fiber.StatusConflict, "EMAIL_EXISTS", "El email ya está registrado"}},
	{domain.ErrShipmentAlreadyExists, errorMapping{fiber.StatusConflict, "SHIPMENT_ALREADY_EXISTS", "La orden ya tiene un envío"}},
	{domain.ErrReturnAlreadyExists, errorMapping{fiber.StatusConflict, "RETURN_ALREADY_EXISTS", "Ya existe una devolución para este producto"}},
	{domain.ErrIdempotencyInProgress, errorMapping{fiber.StatusConflict, "IDEMPOTENCY_IN_PROGRESS", "Ya hay una solicitud en curso con esa Idempotency-Key"}},
	{domain.ErrDuplicate, errorMapping{fiber.StatusConflict, "DUPLICATE", "El recurso ya existe"}},
	{domain.ErrConflict, errorMapping{fiber.StatusConflict, "CONFLICT", "Conflicto con el estado actual"}},

	{domain.ErrNotImplemented, errorMapping{fiber.StatusNotImplemented, "NOT_IMPLEMENTED", "Funcionalidad no disponible"}},
	{context.DeadlineExceeded, errorMapping{fiber.StatusGatewayTimeout, "TIMEOUT", "La operación tardó demasiado"}},
}

var internalError = errorMapping{fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error interno del servidor"}

func mapError(err error) errorMapping {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.errorMapping
		}
	}
	return internalError
}

// respondError traduce err a la respuesta HTTP. Los errores internos se registran y nunca se exponen.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	m := mapError(err)
	body := dto.ErrorResponse{Mensaje: m.mensaje, Codigo: m.codigo}

	var itemErr *domain.ItemError
	if errors.As(err, &itemErr) {
		detalles := fiber.Map{"producto_id": itemErr.ProductID}
		switch {
		case errors.Is(itemErr.Err, domain.ErrInsufficientStock):
			detalles["disponible"] = itemErr.Available
			body.Mensaje = fmt.Sprintf("Stock insuficiente para %s. Disponible: %d", itemErr.ProductID, itemErr.Available)
		case errors.Is(itemErr.Err, domain.ErrProductNotAvailable):
			body.Mensaje = fmt.Sprintf("Producto %s ya no está disponible", itemErr.ProductID)
		}
		body.Detalles = detalles
	}

	if m.status >= fiber.StatusInternalServerError && log != nil {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(m.status).JSON(body)
}
