package entity

import "time"

// Inventory contadores de existencias de un producto (una fila por producto).
// Available y Reserved nunca son negativos.
type Inventory struct {
	ID        string
	ProductID string
	Available int
	Reserved  int
	Location  string
	UpdatedAt time.Time
}

// CanFulfill indica si hay qty unidades disponibles.
func (i *Inventory) CanFulfill(qty int) bool {
	return i != nil && qty > 0 && i.Available >= qty
}
