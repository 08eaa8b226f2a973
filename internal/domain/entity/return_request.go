package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnRequested estado inicial de una devolución.
const ReturnRequested = "solicitada"

// ReturnRequest solicitud de devolución de un producto de una orden.
type ReturnRequest struct {
	ID           string
	OrderID      string
	ProductID    string
	UserID       string
	Reason       string
	Status       string
	RequestedAt  time.Time
	RefundAmount decimal.Decimal
}
