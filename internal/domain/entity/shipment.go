package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Shipment.
const (
	ShipmentInTransit = "en_transito"
	ShipmentDelivered = "entregado"
)

// Shipment despacho de una orden.
type Shipment struct {
	ID             string
	OrderID        string
	Carrier        string
	TrackingNumber string
	ShippedAt      time.Time
	EstimatedAt    time.Time
	Status         string
	Cost           decimal.Decimal
}
