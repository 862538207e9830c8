package timbrado

import (
	"encoding/json"
	"fmt"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/pkg/seniat"
)

// BuildContext datos de entrada del builder: el documento persistido y sus
// colecciones. Solo lectura; el builder nunca muta la factura.
type BuildContext struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	Customer *entity.Customer
	Lines    []*entity.InvoiceLine
	Payments []*entity.InvoicePayment
}

// BuilderService construye el DocumentoElectronico a partir de un documento
// fiscal emitido. Transformación determinista y sin estado: el mismo input
// produce siempre el mismo JSON byte a byte.
type BuilderService struct {
	log zerolog.Logger
}

// NewBuilderService construye el servicio.
func NewBuilderService(log zerolog.Logger) *BuilderService {
	return &BuilderService{log: log}
}

// Build valida el contexto y produce el documento electrónico.
// Falla rápido ante campos estructurales faltantes: borradores no son
// elegibles y una nota sin referencia al documento afectado se rechaza en
// lugar de emitir un payload parcialmente nulo.
func (s *BuilderService) Build(ctx *BuildContext) (*Documento, error) {
	if ctx == nil || ctx.Invoice == nil || ctx.Company == nil || ctx.Customer == nil {
		return nil, fmt.Errorf("timbrado: contexto incompleto: %w", domain.ErrInvalidInput)
	}
	inv := ctx.Invoice
	if inv.Estado == entity.EstadoBorrador {
		return nil, fmt.Errorf("timbrado: documento %s en borrador no es exportable: %w", inv.ID, domain.ErrEstadoInvalido)
	}
	if len(ctx.Lines) == 0 {
		return nil, fmt.Errorf("timbrado: documento %s sin líneas: %w", inv.ID, domain.ErrInvalidInput)
	}

	afectado, err := s.documentoAfectado(inv)
	if err != nil {
		return nil, err
	}

	totales, err := s.totales(ctx)
	if err != nil {
		return nil, err
	}

	doc := &Documento{
		Encabezado: Encabezado{
			IdentificacionDocumento: s.identificacion(inv),
			Emisor: Parte{
				NumeroIdentificacion: ctx.Company.RIF,
				RazonSocial:          foldASCII(ctx.Company.Name),
				Direccion:            foldASCII(ctx.Company.Address),
				Telefono:             ctx.Company.Phone,
				Correo:               ctx.Company.Email,
			},
			Comprador: Parte{
				NumeroIdentificacion: ctx.Customer.RIF,
				RazonSocial:          foldASCII(ctx.Customer.Name),
				Direccion:            foldASCII(ctx.Customer.Address),
				Telefono:             ctx.Customer.Phone,
				Correo:               ctx.Customer.Email,
			},
		},
		DetallesItems:     s.detalles(ctx.Lines),
		Totales:           totales,
		DocumentoAfectado: afectado,
		InfoAdicional:     s.infoAdicional(inv),
	}
	return doc, nil
}

// BuildJSON serializa el documento. json.Marshal con structs de campos fijos
// es determinista: dos llamadas sobre el mismo input producen bytes idénticos.
func (s *BuilderService) BuildJSON(ctx *BuildContext) ([]byte, error) {
	doc, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func (s *BuilderService) identificacion(inv *entity.Invoice) IdentificacionDocumento {
	fecha := inv.Fecha
	if inv.FechaEmision != nil {
		fecha = *inv.FechaEmision
	}
	return IdentificacionDocumento{
		TipoDocumento: tipoDocumentoCodigo(inv.Tipo),
		NumeroFactura: inv.Numero,
		NumeroControl: inv.NumeroControl,
		FechaEmision:  fecha.Format("02/01/2006"),
		HoraEmision:   fecha.Format("15:04:05"),
		Moneda:        inv.Moneda,
		TasaCambio:    inv.TasaCambio.StringFixed(2),
		FechaTasa:     inv.FechaTasa.Format("02/01/2006"),
		Anulado:       inv.Estado == entity.EstadoAnulada,
	}
}

// documentoAfectado aplica el branching nota/no-nota de forma consistente:
// o los cinco campos van llenos (nota) o los cinco van null (factura).
func (s *BuilderService) documentoAfectado(inv *entity.Invoice) (DocumentoAfectado, error) {
	if !inv.EsNota() {
		return DocumentoAfectado{}, nil
	}
	if inv.AfectaNumero == "" || inv.AfectaFecha == nil || !inv.AfectaMonto.GreaterThan(decimal.Zero) || inv.MotivoNota == "" {
		return DocumentoAfectado{}, fmt.Errorf(
			"timbrado: nota %s sin referencia completa al documento afectado: %w",
			inv.ID, domain.ErrDocumentoNoAfectado,
		)
	}
	serie := inv.AfectaSerie
	numero := inv.AfectaNumero
	fecha := inv.AfectaFecha.Format("02/01/2006")
	monto := inv.AfectaMonto.StringFixed(2)
	motivo := foldASCII(inv.MotivoNota)
	return DocumentoAfectado{
		Serie:           &serie,
		NumeroDocumento: &numero,
		FechaDocumento:  &fecha,
		MontoDocumento:  &monto,
		Comentario:      &motivo,
	}, nil
}

func (s *BuilderService) detalles(lines []*entity.InvoiceLine) []DetalleItem {
	out := make([]DetalleItem, 0, len(lines))
	for i, l := range lines {
		descuento := l.Cantidad.Mul(l.PrecioUnitario).Sub(l.BaseImponible)
		out = append(out, DetalleItem{
			NumeroLinea:      fmt.Sprintf("%d", i+1),
			CodigoPLU:        l.Codigo,
			Descripcion:      foldASCII(l.Descripcion),
			Cantidad:         l.Cantidad.String(),
			PrecioUnitario:   l.PrecioUnitario.StringFixed(2),
			DescuentoMonto:   descuento.Round(2).StringFixed(2),
			ValorTotalItem:   l.BaseImponible.StringFixed(2),
			CodigoImpuesto:   string(l.CodigoIVA),
			TasaIVA:          l.Alicuota.StringFixed(2),
			ValorIVA:         l.MontoIVA.StringFixed(2),
			MontoTotalConIVA: l.BaseImponible.Add(l.MontoIVA).StringFixed(2),
		})
	}
	return out
}

func (s *BuilderService) totales(ctx *BuildContext) (Totales, error) {
	inv := ctx.Invoice

	letras, err := fiscal.MontoEnLetras(inv.Total, inv.Moneda)
	if err != nil {
		return Totales{}, fmt.Errorf("timbrado: monto en letras: %w", err)
	}

	var gravado, exento decimal.Decimal
	for _, l := range ctx.Lines {
		if l.MontoIVA.IsZero() {
			exento = exento.Add(l.BaseImponible)
		} else {
			gravado = gravado.Add(l.BaseImponible)
		}
	}

	return Totales{
		NroItems:          fmt.Sprintf("%d", len(ctx.Lines)),
		MontoGravadoTotal: gravado.StringFixed(2),
		MontoExentoTotal:  exento.StringFixed(2),
		Subtotal:          inv.Subtotal.StringFixed(2),
		TotalIVA:          inv.TotalIVA.StringFixed(2),
		MontoTotalConIVA:  inv.Subtotal.Add(inv.TotalIVA).StringFixed(2),
		TotalIGTF:         inv.TotalIGTF.StringFixed(2),
		TotalAPagar:       inv.Total.StringFixed(2),
		MontoEnLetras:     foldASCII(letras),
		ImpuestosSubtotal: s.impuestosSubtotal(ctx),
		FormasPago:        s.formasPago(inv, ctx.Payments),
	}, nil
}

// impuestosSubtotal agrupa las bases e impuestos persistidos por código IVA y
// emite siempre los cinco códigos estatutarios en orden fijo, con ceros para
// los que no tuvieron actividad, más una entrada IGTF cuando es distinto de cero.
func (s *BuilderService) impuestosSubtotal(ctx *BuildContext) []ImpuestoSubtotal {
	type acumulado struct{ base, impuesto decimal.Decimal }
	porCodigo := make(map[fiscal.CodigoIVA]*acumulado, len(fiscal.OrdenCodigosIVA))
	for _, cod := range fiscal.OrdenCodigosIVA {
		porCodigo[cod] = &acumulado{}
	}
	for _, l := range ctx.Lines {
		a, ok := porCodigo[l.CodigoIVA]
		if !ok {
			// Código fuera del catálogo: se acumula como no sujeto.
			s.log.Warn().
				Str("invoice_id", ctx.Invoice.ID).
				Str("codigo_iva", string(l.CodigoIVA)).
				Msg("código IVA no catalogado, acumulado como NS")
			a = porCodigo[fiscal.IVANoSujeto]
		}
		a.base = a.base.Add(l.BaseImponible)
		a.impuesto = a.impuesto.Add(l.MontoIVA)
	}

	out := make([]ImpuestoSubtotal, 0, len(fiscal.OrdenCodigosIVA)+1)
	for _, cod := range fiscal.OrdenCodigosIVA {
		a := porCodigo[cod]
		out = append(out, ImpuestoSubtotal{
			CodigoTotal:        string(cod),
			AlicuotaImpuesto:   fiscal.AlicuotaPorCodigo(cod).StringFixed(2),
			BaseImponible:      a.base.StringFixed(2),
			ValorTotalImpuesto: a.impuesto.StringFixed(2),
		})
	}

	if ctx.Invoice.TotalIGTF.GreaterThan(decimal.Zero) {
		var baseIGTF decimal.Decimal
		for _, p := range ctx.Payments {
			if p.AplicaIGTF {
				baseIGTF = baseIGTF.Add(p.Monto)
			}
		}
		// La alícuota se deriva de los montos congelados al emitir, no de la
		// configuración vigente: una factura vieja conserva su tasa histórica.
		alicuota := decimal.Zero
		if baseIGTF.GreaterThan(decimal.Zero) {
			alicuota = ctx.Invoice.TotalIGTF.Mul(decimal.NewFromInt(100)).Div(baseIGTF).Round(2)
		}
		out = append(out, ImpuestoSubtotal{
			CodigoTotal:        seniat.CodigoSubtotalIGTF,
			AlicuotaImpuesto:   alicuota.StringFixed(2),
			BaseImponible:      baseIGTF.StringFixed(2),
			ValorTotalImpuesto: ctx.Invoice.TotalIGTF.StringFixed(2),
		})
	}
	return out
}

// formasPago mapea cada pago al código externo del catálogo. Un método no
// catalogado cae en el código por defecto y se registra; nunca es un fallo
// duro porque pueden aparecer métodos nuevos antes de actualizar la tabla.
func (s *BuilderService) formasPago(inv *entity.Invoice, payments []*entity.InvoicePayment) []FormaPagoDoc {
	out := make([]FormaPagoDoc, 0, len(payments))
	for _, p := range payments {
		fp, ok := seniat.FormaPagoDe(p.Metodo)
		if !ok {
			s.log.Warn().
				Str("invoice_id", inv.ID).
				Str("metodo", string(p.Metodo)).
				Str("fallback", fp.Codigo).
				Msg("método de pago no catalogado, usando código por defecto")
		}
		out = append(out, FormaPagoDoc{
			Forma:       fp.Codigo,
			Descripcion: fp.Descripcion,
			Monto:       p.Monto.StringFixed(2),
			Moneda:      inv.Moneda,
		})
	}
	return out
}

func (s *BuilderService) infoAdicional(inv *entity.Invoice) []CampoAdicional {
	info := []CampoAdicional{
		{Campo: "TASA_BCV", Valor: inv.TasaCambio.StringFixed(2)},
		{Campo: "EQUIVALENTE_USD", Valor: inv.TotalUSD.StringFixed(2)},
	}
	if inv.Estado == entity.EstadoAnulada && inv.MotivoAnulacion != "" {
		info = append(info, CampoAdicional{Campo: "MOTIVO_ANULACION", Valor: foldASCII(inv.MotivoAnulacion)})
	}
	return info
}

func tipoDocumentoCodigo(tipo string) string {
	switch tipo {
	case entity.TipoNotaDebito:
		return seniat.TipoDocNotaDebito
	case entity.TipoNotaCredito:
		return seniat.TipoDocNotaCredito
	default:
		return seniat.TipoDocFactura
	}
}

// foldASCII elimina diacríticos (Á→A, Í→I, ...) para el payload del proveedor,
// cuyo canal imprime en un charset restringido de impresora fiscal.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldASCII(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}
