// Package pdf implementa la representación gráfica del documento fiscal
// (Providencia SENIAT 00102, formato libre de máquina fiscal digital).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RIF  │  N° Factura + N° Control     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  CLIENTE: Nombre + RIF + dirección fiscal                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / IGTF / TOTAL Bs / Ref. USD        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Monto en letras + Formas de pago + Tasa BCV         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appbilling "github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/pkg/seniat"
)

// Asegura que MarotoPDFGenerator implementa el puerto de salida.
var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	company *entity.Company,
	customer *entity.Customer,
	lines []*entity.InvoiceLine,
	payments []*entity.InvoicePayment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(tituloDocumento(invoice.Tipo), true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company))
	m.AddRows(clienteRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice, payments))

	// Footer fiscal
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range fiscalFooterRows(invoice, payments) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func tituloDocumento(tipo string) string {
	switch tipo {
	case entity.TipoNotaCredito:
		return "NOTA DE CRÉDITO"
	case entity.TipoNotaDebito:
		return "NOTA DE DÉBITO"
	default:
		return "FACTURA"
	}
}

// headerRow: Razón social + RIF (izq) y N° documento + N° de control + Fecha (der).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	fecha := invoice.Fecha
	if invoice.FechaEmision != nil {
		fecha = *invoice.FechaEmision
	}

	right := col.New(5).Add(
		text.New(tituloDocumento(invoice.Tipo), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New("N° "+invoice.Numero, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
		}),
		text.New("Control: "+invoice.NumeroControl, props.Text{
			Size: 9, Align: align.Right, Top: 13, Color: colorDanger,
		}),
		text.New("Fecha: "+fecha.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}),
	)

	return row.New(22).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RIF: "+company.RIF, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		right,
	)
}

// emisorRow: datos del emisor (empresa).
func emisorRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clienteRow: datos del cliente con su RIF y dirección fiscal.
func clienteRow(customer *entity.Customer) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RIF: %s   |   Dirección: %s",
				customer.RIF,
				nonEmpty(customer.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea del documento. La columna IVA muestra la
// alícuota congelada; para E/NS se imprime el código en vez de 0%.
func tableDetailRows(lines []*entity.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		totalLinea := l.BaseImponible.Add(l.MontoIVA)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Cantidad.StringFixed(2),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatBs(l.PrecioUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				etiquetaIVA(l),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatBs(totalLinea),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func etiquetaIVA(l *entity.InvoiceLine) string {
	if l.CodigoIVA == fiscal.IVAExento || l.CodigoIVA == fiscal.IVANoSujeto {
		return "(" + string(l.CodigoIVA) + ")"
	}
	return l.Alicuota.StringFixed(0) + "%"
}

// etiquetaTotalIGTF deriva la alícuota mostrada de los montos congelados al
// emitir, no de la configuración vigente: un documento viejo conserva su tasa
// histórica. Sin IGTF (o sin base) la etiqueta va sin porcentaje.
func etiquetaTotalIGTF(invoice *entity.Invoice, payments []*entity.InvoicePayment) string {
	if !invoice.TotalIGTF.GreaterThan(decimal.Zero) {
		return "IGTF:"
	}
	var base decimal.Decimal
	for _, p := range payments {
		if p.AplicaIGTF {
			base = base.Add(p.Monto)
		}
	}
	if !base.GreaterThan(decimal.Zero) {
		return "IGTF:"
	}
	tasa := invoice.TotalIGTF.Mul(decimal.NewFromInt(100)).Div(base).Round(2)
	return fmt.Sprintf("IGTF (%s%%):", tasa.String())
}

// totalsRow: bloque de totales alineado a la derecha, con la referencia en
// divisa cuando el documento ya congeló una tasa.
func totalsRow(invoice *entity.Invoice, payments []*entity.InvoicePayment) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grandLabel := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: top,
		})
	}
	grandValue := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	labels := []core.Component{
		label("Subtotal:", 1),
		label("IVA:", 6),
		label(etiquetaTotalIGTF(invoice, payments), 11),
		grandLabel("TOTAL Bs:", 16),
	}
	values := []core.Component{
		value(formatBs(invoice.Subtotal), 1),
		value(formatBs(invoice.TotalIVA), 6),
		value(formatBs(invoice.TotalIGTF), 11),
		grandValue(formatBs(invoice.Total), 16),
	}
	height := 24.0
	if invoice.TasaCambio.IsPositive() {
		labels = append(labels, label("Ref. USD:", 22))
		values = append(values, value("$ "+invoice.TotalUSD.StringFixed(2), 22))
		height = 29
	}

	return row.New(height).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

// fiscalFooterRows: monto en letras, formas de pago, tasa BCV, documento
// afectado (notas) y marca de anulación.
func fiscalFooterRows(invoice *entity.Invoice, payments []*entity.InvoicePayment) []core.Row {
	var rows []core.Row

	if letras, err := fiscal.MontoEnLetras(invoice.Total, invoice.Moneda); err == nil {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("SON: "+letras, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 2,
			}),
		)))
	}

	if len(payments) > 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("FORMAS DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
		)))
		for _, p := range payments {
			fp, _ := seniat.FormaPagoDe(p.Metodo)
			linea := fmt.Sprintf("%s — %s", fp.Descripcion, formatBs(p.Monto))
			if p.AplicaIGTF {
				linea += fmt.Sprintf("   (IGTF %s)", formatBs(p.MontoIGTF))
			}
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(linea, props.Text{Size: 7.5, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
	}

	if invoice.TasaCambio.IsPositive() {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Tasa BCV aplicada: %s Bs/USD (%s)",
				invoice.TasaCambio.StringFixed(4),
				invoice.FechaTasa.Format("02/01/2006"),
			), props.Text{Size: 7.5, Color: colorGray, Top: 2}),
		)))
	}

	if invoice.EsNota() && invoice.AfectaNumero != "" {
		afectaFecha := "—"
		if invoice.AfectaFecha != nil {
			afectaFecha = invoice.AfectaFecha.Format("02/01/2006")
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Afecta a la factura N° %s del %s por %s. Motivo: %s",
				invoice.AfectaNumero, afectaFecha,
				formatBs(invoice.AfectaMonto), invoice.MotivoNota,
			), props.Text{Size: 7.5, Top: 2}),
		)))
	}

	if invoice.Estado == entity.EstadoAnulada {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("DOCUMENTO ANULADO — "+invoice.MotivoAnulacion, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorDanger, Top: 3,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento generado conforme a la Providencia Administrativa "+
				"SENIAT/2024/00102. Conserve este documento como soporte fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBs formatea un monto en bolívares con separador de miles y coma
// decimal. Ej: 1234567.89 → "Bs 1.234.567,89"
func formatBs(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	entero, dec := s[:len(s)-3], s[len(s)-2:]

	n := len(entero)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, entero[i])
	}
	out := "Bs " + string(buf) + "," + dec
	if neg {
		out = "Bs -" + string(buf) + "," + dec
	}
	return out
}
