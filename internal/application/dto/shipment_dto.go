package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateShipmentRequest despacho de una orden confirmada (admin).
type CreateShipmentRequest struct {
	OrderID       string          `json:"orden_id" validate:"required"`
	Carrier       string          `json:"transportista" validate:"required,max=100"`
	Cost          decimal.Decimal `json:"costo_envio"`
	EstimatedDays int             `json:"dias_estimados" validate:"omitempty,min=1,max=60"`
}

// ShipmentResponse salida de un envío.
type ShipmentResponse struct {
	ID             string          `json:"envio_id"`
	OrderID        string          `json:"orden_id"`
	Carrier        string          `json:"transportista"`
	TrackingNumber string          `json:"numero_seguimiento"`
	ShippedAt      time.Time       `json:"fecha_envio"`
	EstimatedAt    time.Time       `json:"fecha_estimada"`
	Status         string          `json:"estado"`
	Cost           decimal.Decimal `json:"costo_envio"`
}

// ShipmentListResponse lista paginada de envíos.
type ShipmentListResponse struct {
	Shipments  []ShipmentResponse `json:"envios"`
	Pagination Pagination         `json:"paginacion"`
}
