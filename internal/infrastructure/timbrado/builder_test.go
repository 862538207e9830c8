package timbrado

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newBuilder() *BuilderService {
	return NewBuilderService(zerolog.Nop())
}

// facturaEmitida arma un contexto completo de factura emitida: dos líneas
// (una gravada G, una exenta) y dos pagos (uno en Bs, uno en divisa con IGTF).
func facturaEmitida() *BuildContext {
	fecha := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	return &BuildContext{
		Invoice: &entity.Invoice{
			ID:            "inv-001",
			CompanyID:     "co-001",
			CustomerID:    "cus-001",
			Tipo:          entity.TipoFactura,
			Estado:        entity.EstadoEmitida,
			Numero:        "00000042",
			NumeroControl: "00-00001042",
			Moneda:        "VES",
			Fecha:         fecha,
			FechaEmision:  &fecha,
			Subtotal:      dec("1500.00"),
			TotalIVA:      dec("160.00"),
			TotalIGTF:     dec("15.00"),
			Total:         dec("1675.00"),
			TasaCambio:    dec("36.50"),
			FechaTasa:     fecha,
			TotalUSD:      dec("45.89"),
		},
		Company: &entity.Company{
			Name:    "Inversiones Páramo C.A.",
			RIF:     "J-30816256-6",
			Address: "Av. Francisco de Miranda, Caracas",
		},
		Customer: &entity.Customer{
			Name:    "María Pérez",
			RIF:     "V-12345678-1",
			Address: "Calle 5, Mérida",
		},
		Lines: []*entity.InvoiceLine{
			{
				Codigo:         "PLU-001",
				Descripcion:    "Café molido 500g",
				Cantidad:       dec("10"),
				PrecioUnitario: dec("100.00"),
				CodigoIVA:      fiscal.IVAGeneral,
				Alicuota:       dec("16"),
				BaseImponible:  dec("1000.00"),
				MontoIVA:       dec("160.00"),
			},
			{
				Codigo:         "PLU-002",
				Descripcion:    "Harina de maíz 1kg",
				Cantidad:       dec("5"),
				PrecioUnitario: dec("100.00"),
				CodigoIVA:      fiscal.IVAExento,
				Alicuota:       dec("0"),
				BaseImponible:  dec("500.00"),
				MontoIVA:       dec("0.00"),
			},
		},
		Payments: []*entity.InvoicePayment{
			{Metodo: fiscal.MetodoPagoMovil, Monto: dec("1175.00")},
			{Metodo: fiscal.MetodoEfectivoDivisa, Monto: dec("500.00"), AplicaIGTF: true, MontoIGTF: dec("15.00")},
		},
	}
}

// notaCredito arma una nota de crédito emitida con la referencia completa
// al documento afectado.
func notaCredito() *BuildContext {
	ctx := facturaEmitida()
	afectaFecha := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	ctx.Invoice.Tipo = entity.TipoNotaCredito
	ctx.Invoice.AfectaSerie = "A"
	ctx.Invoice.AfectaNumero = "00000040"
	ctx.Invoice.AfectaFecha = &afectaFecha
	ctx.Invoice.AfectaMonto = dec("2000.00")
	ctx.Invoice.MotivoNota = "Devolución parcial de mercancía"
	return ctx
}

// ─────────────────────────────────────────────────────────────────────────────
// Elegibilidad
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_RechazaBorrador(t *testing.T) {
	ctx := facturaEmitida()
	ctx.Invoice.Estado = entity.EstadoBorrador

	_, err := newBuilder().Build(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestBuild_RechazaContextoIncompleto(t *testing.T) {
	ctx := facturaEmitida()
	ctx.Customer = nil

	_, err := newBuilder().Build(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuild_RechazaSinLineas(t *testing.T) {
	ctx := facturaEmitida()
	ctx.Lines = nil

	_, err := newBuilder().Build(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Factura: encabezado, detalles y totales
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_FacturaCompleta(t *testing.T) {
	doc, err := newBuilder().Build(facturaEmitida())
	require.NoError(t, err)

	id := doc.Encabezado.IdentificacionDocumento
	assert.Equal(t, "01", id.TipoDocumento)
	assert.Equal(t, "00000042", id.NumeroFactura)
	assert.Equal(t, "00-00001042", id.NumeroControl)
	assert.Equal(t, "15/03/2026", id.FechaEmision)
	assert.Equal(t, "10:30:00", id.HoraEmision)
	assert.Equal(t, "36.50", id.TasaCambio)
	assert.False(t, id.Anulado)

	// Los diacríticos se eliminan para el canal del proveedor.
	assert.Equal(t, "Inversiones Paramo C.A.", doc.Encabezado.Emisor.RazonSocial)
	assert.Equal(t, "Maria Perez", doc.Encabezado.Comprador.RazonSocial)

	require.Len(t, doc.DetallesItems, 2)
	l1 := doc.DetallesItems[0]
	assert.Equal(t, "1", l1.NumeroLinea)
	assert.Equal(t, "PLU-001", l1.CodigoPLU)
	assert.Equal(t, "Cafe molido 500g", l1.Descripcion)
	assert.Equal(t, "1000.00", l1.ValorTotalItem)
	assert.Equal(t, "G", l1.CodigoImpuesto)
	assert.Equal(t, "160.00", l1.ValorIVA)
	assert.Equal(t, "1160.00", l1.MontoTotalConIVA)

	tot := doc.Totales
	assert.Equal(t, "2", tot.NroItems)
	assert.Equal(t, "1000.00", tot.MontoGravadoTotal)
	assert.Equal(t, "500.00", tot.MontoExentoTotal)
	assert.Equal(t, "1500.00", tot.Subtotal)
	assert.Equal(t, "160.00", tot.TotalIVA)
	assert.Equal(t, "15.00", tot.TotalIGTF)
	assert.Equal(t, "1675.00", tot.TotalAPagar)
	assert.Equal(t, "UN MIL SEISCIENTOS SETENTA Y CINCO BOLIVARES", tot.MontoEnLetras)
}

func TestBuild_SubtotalesCincoCodigosEnOrdenFijo(t *testing.T) {
	doc, err := newBuilder().Build(facturaEmitida())
	require.NoError(t, err)

	// Cinco códigos IVA siempre, en orden fijo, más la entrada IGTF.
	sub := doc.Totales.ImpuestosSubtotal
	require.Len(t, sub, 6)

	codigos := make([]string, 0, len(sub))
	for _, s := range sub {
		codigos = append(codigos, s.CodigoTotal)
	}
	assert.Equal(t, []string{"G", "R", "A", "E", "NS", "IGTF"}, codigos)

	assert.Equal(t, "1000.00", sub[0].BaseImponible)
	assert.Equal(t, "160.00", sub[0].ValorTotalImpuesto)
	// Códigos sin actividad salen en cero, no se omiten.
	assert.Equal(t, "0.00", sub[1].BaseImponible)
	assert.Equal(t, "0.00", sub[2].BaseImponible)
	assert.Equal(t, "500.00", sub[3].BaseImponible)
	assert.Equal(t, "0.00", sub[4].BaseImponible)

	igtf := sub[5]
	assert.Equal(t, "500.00", igtf.BaseImponible)
	assert.Equal(t, "15.00", igtf.ValorTotalImpuesto)
	assert.Equal(t, "3.00", igtf.AlicuotaImpuesto)
}

func TestBuild_SinIGTFNoEmiteEntradaExtra(t *testing.T) {
	ctx := facturaEmitida()
	ctx.Invoice.TotalIGTF = decimal.Zero
	ctx.Invoice.Total = dec("1660.00")
	ctx.Payments = []*entity.InvoicePayment{
		{Metodo: fiscal.MetodoTransferencia, Monto: dec("1660.00")},
	}

	doc, err := newBuilder().Build(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Totales.ImpuestosSubtotal, 5)
}

// ─────────────────────────────────────────────────────────────────────────────
// Formas de pago
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_FormasPagoMapeadas(t *testing.T) {
	doc, err := newBuilder().Build(facturaEmitida())
	require.NoError(t, err)

	require.Len(t, doc.Totales.FormasPago, 2)
	assert.Equal(t, "04", doc.Totales.FormasPago[0].Forma)
	assert.Equal(t, "1175.00", doc.Totales.FormasPago[0].Monto)
	assert.Equal(t, "02", doc.Totales.FormasPago[1].Forma)
}

func TestBuild_MetodoNoCatalogadoUsaCodigoPorDefecto(t *testing.T) {
	ctx := facturaEmitida()
	ctx.Payments = append(ctx.Payments, &entity.InvoicePayment{
		Metodo: fiscal.MetodoPago("criptomoneda"),
		Monto:  dec("10.00"),
	})

	doc, err := newBuilder().Build(ctx)
	require.NoError(t, err)

	fp := doc.Totales.FormasPago[2]
	assert.Equal(t, "99", fp.Forma)
	assert.Equal(t, "OTRO", fp.Descripcion)
}

// ─────────────────────────────────────────────────────────────────────────────
// Documento afectado: facturas vs notas
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_FacturaDocumentoAfectadoTodoNulo(t *testing.T) {
	doc, err := newBuilder().Build(facturaEmitida())
	require.NoError(t, err)

	af := doc.DocumentoAfectado
	assert.Nil(t, af.Serie)
	assert.Nil(t, af.NumeroDocumento)
	assert.Nil(t, af.FechaDocumento)
	assert.Nil(t, af.MontoDocumento)
	assert.Nil(t, af.Comentario)
}

func TestBuild_NotaDocumentoAfectadoCompleto(t *testing.T) {
	doc, err := newBuilder().Build(notaCredito())
	require.NoError(t, err)

	assert.Equal(t, "03", doc.Encabezado.IdentificacionDocumento.TipoDocumento)

	af := doc.DocumentoAfectado
	require.NotNil(t, af.Serie)
	require.NotNil(t, af.NumeroDocumento)
	require.NotNil(t, af.FechaDocumento)
	require.NotNil(t, af.MontoDocumento)
	require.NotNil(t, af.Comentario)
	assert.Equal(t, "A", *af.Serie)
	assert.Equal(t, "00000040", *af.NumeroDocumento)
	assert.Equal(t, "01/02/2026", *af.FechaDocumento)
	assert.Equal(t, "2000.00", *af.MontoDocumento)
	assert.Equal(t, "Devolucion parcial de mercancia", *af.Comentario)
}

func TestBuild_NotaSinReferenciaSeRechaza(t *testing.T) {
	ctx := notaCredito()
	ctx.Invoice.AfectaNumero = ""

	_, err := newBuilder().Build(ctx)
	assert.ErrorIs(t, err, domain.ErrDocumentoNoAfectado)
}

func TestBuild_NotaConReferenciaParcialSeRechaza(t *testing.T) {
	ctx := notaCredito()
	ctx.Invoice.AfectaMonto = decimal.Zero

	_, err := newBuilder().Build(ctx)
	assert.ErrorIs(t, err, domain.ErrDocumentoNoAfectado)
}

// ─────────────────────────────────────────────────────────────────────────────
// Anulación e idempotencia
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_AnuladaMarcaFlagYMotivo(t *testing.T) {
	ctx := facturaEmitida()
	ctx.Invoice.Estado = entity.EstadoAnulada
	ctx.Invoice.MotivoAnulacion = "Error en datos del cliente"

	doc, err := newBuilder().Build(ctx)
	require.NoError(t, err)

	assert.True(t, doc.Encabezado.IdentificacionDocumento.Anulado)
	encontrado := false
	for _, c := range doc.InfoAdicional {
		if c.Campo == "MOTIVO_ANULACION" {
			encontrado = true
			assert.Equal(t, "Error en datos del cliente", c.Valor)
		}
	}
	assert.True(t, encontrado)
}

func TestBuildJSON_Idempotente(t *testing.T) {
	b := newBuilder()

	primero, err := b.BuildJSON(facturaEmitida())
	require.NoError(t, err)
	segundo, err := b.BuildJSON(facturaEmitida())
	require.NoError(t, err)

	// Mismo documento, mismos bytes: la exportación es repetible.
	assert.True(t, bytes.Equal(primero, segundo))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(primero, &doc))
	assert.Contains(t, doc, "encabezado")
	assert.Contains(t, doc, "documentoAfectado")
}
