package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReturnRequest solicitud de devolución.
type CreateReturnRequest struct {
	OrderID   string `json:"orden_id" validate:"required"`
	ProductID string `json:"producto_id" validate:"required"`
	Reason    string `json:"motivo" validate:"required,max=1000"`
}

// ReturnListRequest filtros del listado de devoluciones.
type ReturnListRequest struct {
	PageRequest
	Status string `query:"estado"`
}

// ReturnResponse salida de una devolución.
type ReturnResponse struct {
	ID           string          `json:"devolucion_id"`
	OrderID      string          `json:"orden_id"`
	ProductID    string          `json:"producto_id"`
	Reason       string          `json:"motivo"`
	Status       string          `json:"estado"`
	RequestedAt  time.Time       `json:"fecha_solicitud"`
	RefundAmount decimal.Decimal `json:"monto_reembolso"`
}

// ReturnListResponse lista paginada de devoluciones.
type ReturnListResponse struct {
	Returns    []ReturnResponse `json:"devoluciones"`
	Pagination Pagination       `json:"paginacion"`
}
