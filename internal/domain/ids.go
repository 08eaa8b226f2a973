package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// IDKind describe el formato de los identificadores legibles de una entidad: prefijo fijo
// seguido de un número que arranca en Start y crece de uno en uno.
type IDKind struct {
	Entity string
	Prefix string
	Start  int64
}

// Tipos de identificador por entidad.
var (
	KindUser      = IDKind{Entity: "usuarios", Prefix: "US", Start: 100001}
	KindCategory  = IDKind{Entity: "categorias", Prefix: "CA", Start: 200001}
	KindProduct   = IDKind{Entity: "productos", Prefix: "PR", Start: 300001}
	KindCart      = IDKind{Entity: "carritos", Prefix: "CR", Start: 500001}
	KindCartItem  = IDKind{Entity: "items_carrito", Prefix: "IC", Start: 600001}
	KindOrder     = IDKind{Entity: "ordenes", Prefix: "OR", Start: 700001}
	KindOrderLine = IDKind{Entity: "items_orden", Prefix: "IO", Start: 800001}
	KindPayment   = IDKind{Entity: "pagos", Prefix: "PA", Start: 900001}
	KindInventory = IDKind{Entity: "inventarios", Prefix: "IN", Start: 110001}
	KindReview    = IDKind{Entity: "resenas", Prefix: "RE", Start: 120001}
	KindFavorite  = IDKind{Entity: "favoritos", Prefix: "FA", Start: 130001}
	KindReturn    = IDKind{Entity: "devoluciones", Prefix: "DE", Start: 150001}
	KindShipment  = IDKind{Entity: "envios", Prefix: "EN", Start: 100001}
	KindPost      = IDKind{Entity: "publicaciones", Prefix: "POST", Start: 700001}
	KindComment   = IDKind{Entity: "comentarios", Prefix: "CMT", Start: 800001}
	KindReaction  = IDKind{Entity: "reacciones", Prefix: "RCN", Start: 900001}
)

// Format arma el identificador para el número n.
func (k IDKind) Format(n int64) string {
	return k.Prefix + strconv.FormatInt(n, 10)
}

// Parse extrae la parte numérica de un identificador de este tipo.
func (k IDKind) Parse(id string) (int64, error) {
	if !strings.HasPrefix(id, k.Prefix) {
		return 0, fmt.Errorf("id %q no tiene prefijo %s: %w", id, k.Prefix, ErrInvalidInput)
	}
	n, err := strconv.ParseInt(id[len(k.Prefix):], 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("id %q con número inválido: %w", id, ErrInvalidInput)
	}
	return n, nil
}

// Digits devuelve la parte numérica de id como texto, sin validar el prefijo.
// Sirve para comprobantes y códigos de transacción derivados del id.
func Digits(id string) string {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
