// Package pdf implementa la representación imprimible de una factura de
// campaña publicitaria.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT/Tax ID  │  N° Factura + Fechas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                  │
//	│  CAMPAÑA: Nombre + periodo + estado                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Línea | Pautado | Real | Ajuste | Efectivo           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Suma efectiva / TOTAL FACTURADO                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, data *billing.InvoicePDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Campaña "+data.Invoice.InvoiceNumber, true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Invoice, data.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(data.Invoice))
	m.AddRows(campaignRow(data.Campaign))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas de pauta
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(data.LineItems) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Invoice, data.LineItems))

	// Estado y leyenda
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(data.Invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y número de factura + fechas (der).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(company.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE CAMPAÑA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Emisión: %s   Vence: %s",
				invoice.IssueDate.Format("02/01/2006"),
				invoice.DueDate.Format("02/01/2006"),
			), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

// clientRow: datos del cliente facturado.
func clientRow(invoice *entity.Invoice) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Moneda: %s",
				nonEmpty(invoice.ClientEmail, "—"),
				nonEmpty(invoice.Currency, "COP"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// campaignRow: campaña a la que pertenece la factura.
func campaignRow(campaign *entity.Campaign) core.Row {
	if campaign == nil {
		return row.New(2)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CAMPAÑA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s a %s   |   %s",
				campaign.Name,
				campaign.StartDate.Format("02/01/2006"),
				campaign.EndDate.Format("02/01/2006"),
				strings.ToUpper(campaign.Status),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas de pauta.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Línea de pauta", 4, align.Left),
		h("Pautado", 2, align.Right),
		h("Real", 2, align.Right),
		h("Ajuste", 2, align.Right),
		h("Efectivo", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de pauta.
func tableItemRows(items []*entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	money := func(d decimal.Decimal, size int) core.Col {
		return col.New(size).Add(text.New(
			"$"+formatMoney(d.StringFixed(2)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		))
	}
	for _, li := range items {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				li.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			money(li.BookedAmount, 2),
			money(li.ActualAmount, 2),
			money(li.Adjustments, 2),
			money(li.EffectiveAmount(), 2),
		))
	}
	return result
}

// totalsRow: suma efectiva de las líneas y total facturado.
func totalsRow(invoice *entity.Invoice, items []*entity.LineItem) core.Row {
	effective := decimal.Zero
	for _, li := range items {
		effective = effective.Add(li.EffectiveAmount())
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(18).Add(
		col.New(3),
		col.New(3).Add(
			label("Suma efectiva:"),
			grandLabel("TOTAL FACTURADO:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(effective.StringFixed(2))),
			grandValue("$"+formatMoney(invoice.TotalAmount.StringFixed(2))),
		),
		col.New(3),
	)
}

// footerRows: estado de la factura y leyenda.
func footerRows(invoice *entity.Invoice) []core.Row {
	status := "Estado: " + strings.ToUpper(invoice.Status)
	if invoice.PaidDate != nil {
		status += "   |   Pagada el " + invoice.PaidDate.Format("02/01/2006")
	}
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Los montos de ajuste reflejan el último valor aplicado; el detalle de "+
					"cada cambio queda registrado en el historial de la factura.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en la parte entera de un string numérico.
// Ej: "25000.00" → "25.000.00", "1000000.50" → "1.000.000.50"
func formatMoney(s string) string {
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(intPart) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		intPart = string(buf)
	}
	if neg {
		intPart = "-" + intPart
	}
	return intPart + frac
}
