package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingFields      = errors.New("faltan campos obligatorios")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDisabled    = errors.New("cuenta desactivada")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidQuantity    = errors.New("cantidad inválida")

	// Catálogo
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrProductNotAvailable = errors.New("producto no disponible")
	ErrInvalidCategory     = errors.New("categoría inválida")
	ErrCategoryNotFound    = errors.New("categoría no encontrada")
	ErrInventoryNotFound   = errors.New("inventario no encontrado")

	// Carrito y órdenes
	ErrNoActiveCart            = errors.New("no hay carrito activo")
	ErrEmptyCart               = errors.New("el carrito está vacío")
	ErrCartItemNotFound        = errors.New("item de carrito no encontrado")
	ErrOrderNotFound           = errors.New("orden no encontrada")
	ErrCannotCancelOrder       = errors.New("la orden no se puede cancelar en su estado actual")
	ErrInvalidStatusTransition = errors.New("transición de estado no permitida")
	ErrInvalidOrderStatus      = errors.New("estado de orden inválido para esta operación")
	ErrIdempotencyInProgress   = errors.New("ya hay una solicitud en curso con esa clave")

	// Envíos, devoluciones, favoritos, reseñas
	ErrShipmentNotFound      = errors.New("envío no encontrado")
	ErrShipmentAlreadyExists = errors.New("la orden ya tiene un envío")
	ErrTrackingNotFound      = errors.New("número de seguimiento no encontrado")
	ErrReturnNotFound        = errors.New("devolución no encontrada")
	ErrReturnAlreadyExists   = errors.New("ya existe una devolución para este producto")
	ErrProductNotInOrder     = errors.New("el producto no pertenece a la orden")
	ErrAlreadyInFavorites    = errors.New("el producto ya está en favoritos")
	ErrFavoriteNotFound      = errors.New("favorito no encontrado")
	ErrInvalidRating         = errors.New("la puntuación debe estar entre 1 y 5")
	ErrReviewNotFound        = errors.New("reseña no encontrada")

	// Comunidad
	ErrMissingContent      = errors.New("el contenido es requerido")
	ErrEmptyContent        = errors.New("el contenido no puede estar vacío")
	ErrPostNotFound        = errors.New("publicación no encontrada")
	ErrCommentNotFound     = errors.New("comentario no encontrado")
	ErrInvalidReactionType = errors.New("tipo de reacción inválido")

	ErrNotImplemented = errors.New("funcionalidad no disponible")
)

// ItemError asocia un error de negocio a un producto concreto del carrito u orden.
type ItemError struct {
	ProductID string
	Available int
	Err       error
}

func (e *ItemError) Error() string {
	return e.Err.Error() + ": " + e.ProductID
}

func (e *ItemError) Unwrap() error { return e.Err }
