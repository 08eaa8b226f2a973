package order

import (
	"fmt"
	"time"

	"github.com/jhoicas/elbaul-api/internal/domain"
)

// ReceiptNumber comprobante de pago derivado del id de la orden: COMP-<año>-<número>.
func ReceiptNumber(orderID string, at time.Time) string {
	return fmt.Sprintf("COMP-%d-%s", at.Year(), domain.Digits(orderID))
}

// TransactionCode código de transacción derivado del id del pago: TRX-<año>-<número>.
func TransactionCode(paymentID string, at time.Time) string {
	return fmt.Sprintf("TRX-%d-%s", at.Year(), domain.Digits(paymentID))
}
