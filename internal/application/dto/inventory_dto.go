package dto

import "time"

// QuantityRequest cantidad para reabastecer, reservar o liberar.
type QuantityRequest struct {
	Quantity int `json:"cantidad" validate:"required,min=1"`
}

// InventoryResponse contadores de un producto.
type InventoryResponse struct {
	ID        string    `json:"inventario_id"`
	ProductID string    `json:"producto_id"`
	Available int       `json:"cantidad_disponible"`
	Reserved  int       `json:"cantidad_reservada"`
	Location  string    `json:"ubicacion"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailabilityResponse resultado de CheckAvailability.
type AvailabilityResponse struct {
	ProductID string `json:"producto_id"`
	Quantity  int    `json:"cantidad"`
	Available bool   `json:"disponible"`
}
