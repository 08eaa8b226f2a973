// Package pdf genera el comprobante de pago de una orden.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  ElBaul                      │  N° Comprobante + Fecha      │
//	│  COMPRADOR: nombre / email / dirección de envío              │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  TOTAL                                                       │
//	│  PAGO: método / transacción / estado + QR                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/elbaul-api/internal/application/order"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 120, Green: 72, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ order.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa order.ReceiptGenerator con Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	if storeName == "" {
		storeName = "ElBaul"
	}
	return &ReceiptGenerator{storeName: storeName}
}

func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, data order.ReceiptData) ([]byte, error) {
	if data.Order == nil {
		return nil, fmt.Errorf("pdf: orden requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+data.Order.ReceiptNumber, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(data.Order, data.Buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(data.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data.Order))
	if data.Payment != nil {
		m.AddRows(line.NewRow(3))
		m.AddRows(paymentRow(data.Order, data.Payment))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(o *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Orden "+o.ID, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE PAGO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(o.ReceiptNumber, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+o.OrderedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func buyerRow(o *entity.Order, buyer *entity.User) core.Row {
	name, email := o.UserID, "-"
	if buyer != nil {
		name = strings.TrimSpace(buyer.FirstName + " " + buyer.LastName)
		email = nonEmpty(buyer.Email, "-")
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("COMPRADOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Envío: %s", email, nonEmpty(o.ShippingAddress, "-")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func lineRows(lines []*entity.OrderLineDetail) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		desc := nonEmpty(l.ProductTitle, l.ProductID)
		if l.ProductBrand != "" {
			desc += " (" + l.ProductBrand + ")"
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(o *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2})),
		col.New(3).Add(text.New(formatMoney(o.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1})),
	)
}

func paymentRow(o *entity.Order, p *entity.Payment) core.Row {
	qr := fmt.Sprintf("%s|%s|%s", o.ReceiptNumber, p.TransactionCode, o.Total.StringFixed(2))
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("PAGO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3}),
			text.New("Método: "+p.Method, props.Text{Size: 9, Top: 9, Left: 3}),
			text.New("Transacción: "+p.TransactionCode, props.Text{Size: 9, Top: 15, Left: 3}),
			text.New("Estado: "+p.Status, props.Text{Size: 9, Top: 21, Left: 3}),
			text.New("Monto: "+formatMoney(p.Amount), props.Text{Style: fontstyle.Bold, Size: 9, Top: 27, Left: 3}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney "$" con puntos de miles y coma decimal. Ej: 1250.5 -> "$1.250,50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "," + frac
}
