package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condiciones posibles de un artículo de segunda mano.
const (
	ConditionNew       = "nuevo"
	ConditionLikeNew   = "como_nuevo"
	ConditionExcellent = "excelente"
	ConditionGood      = "bueno"
	ConditionFair      = "regular"
)

// ValidCondition indica si c es una condición de producto admitida.
func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Product artículo publicado en el catálogo.
// Stock replica Inventory.Available y se actualiza en la misma transacción.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	Condition   string
	Stock       int
	Brand       string
	Model       string
	CategoryID  string
	SellerID    string // opcional
	Active      bool
	Featured    bool
	SearchText  string // título, descripción y marca normalizados (sin tildes)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Purchasable indica si el producto puede agregarse al carrito o comprarse.
func (p *Product) Purchasable() bool {
	return p != nil && p.Active
}
