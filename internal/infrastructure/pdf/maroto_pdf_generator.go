// Package pdf genera el resumen imprimible de una orden.
//
// Layout de la página Letter:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + origen      │  N° Orden + Fecha + Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + email / tel                               │
//	│  DIRECCIONES: Facturación │ Envío                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Impuesto | Total          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / Envío / TOTAL               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Transportista + guía (+ QR de la guía)              │
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

	"github.com/jhoicas/humble-crm/internal/application/ports"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

var _ ports.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorAccent  = &props.Color{Red: 180, Green: 83, Blue: 9}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	shopName string
}

// NewMarotoPDFGenerator construye el generador; shopName encabeza el documento.
func NewMarotoPDFGenerator(shopName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{shopName: nonEmpty(shopName, "Humble Garage")}
}

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(_ context.Context, order *entity.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Order "+order.DisplayNumber(), true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(addressRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(lineItemRows(order.LineItems)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	if footer := shippingRows(order); len(footer) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(footer...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: taller + origen (izq) y número, fecha y estado (der).
func (g *MarotoPDFGenerator) headerRow(o *entity.Order) core.Row {
	date := "—"
	if o.Date != nil {
		date = o.Date.Format("Jan 2, 2006")
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Source: "+strings.ToUpper(nonEmpty(o.Source, "manual")), props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDER SUMMARY", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorAccent, Top: 1,
			}),
			text.New(o.DisplayNumber(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Status: "+nonEmpty(o.Status, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func customerRow(o *entity.Order) core.Row {
	email, phone := "—", "—"
	if o.Customer != nil {
		email = nonEmpty(o.Customer.Email, "—")
		phone = nonEmpty(o.Customer.Phone, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1,
			}),
			text.New(o.CustomerName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s", email, phone), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
	)
}

// addressRow: facturación y envío lado a lado; una dirección ausente se muestra como "—".
func addressRow(o *entity.Order) core.Row {
	block := func(title string, a *entity.Address) core.Col {
		c := col.New(6).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1,
		}))
		lines := []string{"—"}
		if a != nil {
			if l := a.Lines(); len(l) > 0 {
				lines = l
			}
		}
		c.Add(text.New(strings.Join(lines, "\n"), props.Text{Size: 8, Top: 5, Color: colorGray}))
		return c
	}
	return row.New(24).Add(
		block("BILLING ADDRESS", o.BillingAddress),
		block("SHIPPING ADDRESS", o.ShippingAddress),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 5, align.Left),
		h("Unit Price", 2, align.Right),
		h("Tax", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// lineItemRows: una fila por línea; sin líneas se imprime un aviso.
func lineItemRows(items []entity.LineItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("No line items", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.Tax),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(o *entity.Order) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorAccent, Right: right, Top: 18,
		})
	}

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Tax:", 6),
			label("Shipping:", 11),
			grand("TOTAL:", 2),
		),
		col.New(3).Add(
			value(formatMoney(o.Subtotal), 1),
			value(formatMoney(o.TaxTotal), 6),
			value(formatMoney(o.ShippingTotal), 11),
			grand(formatMoney(o.Total), 1),
		),
	)
}

// shippingRows: transportista y guía; la guía también va como QR.
func shippingRows(o *entity.Order) []core.Row {
	if o.ShippingTracking == "" && o.ShippingCarrier == "" {
		return nil
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("SHIPPING", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Carrier: %s   |   Tracking: %s",
				nonEmpty(o.ShippingCarrier, "—"),
				nonEmpty(o.ShippingTracking, "—"),
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
	if o.ShippingTracking != "" {
		rows = append(rows, row.New(30).Add(
			col.New(3).Add(code.NewQr(o.ShippingTracking, props.Rect{Percent: 90, Center: true})),
			col.New(9),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// formatMoney imprime "$1,234.50"; un valor ausente se muestra como "—".
func formatMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "—"
	}
	s := d.Decimal.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.Decimal.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "." + frac
}
