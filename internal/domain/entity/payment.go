package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Payment.
const (
	PaymentApproved = "aprobado"
	PaymentRefunded = "reembolsado"
)

// Payment pago asociado 1:1 a una orden.
type Payment struct {
	ID              string
	OrderID         string
	Amount          decimal.Decimal
	Method          string
	PaidAt          time.Time
	Status          string
	TransactionCode string
}
