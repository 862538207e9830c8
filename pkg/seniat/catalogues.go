// Package seniat contiene catálogos y validaciones del formato de documento
// electrónico venezolano (SENIAT / proveedor de imprenta digital): tipos de
// documento, códigos de forma de pago, alícuotas y validación de RIF.
package seniat

import "github.com/facturave/facturave-api/internal/domain/fiscal"

// =============================================================================
// Tipos de documento del esquema de documento electrónico.
// =============================================================================

const (
	TipoDocFactura     = "01" // Factura
	TipoDocNotaDebito  = "02" // Nota de débito
	TipoDocNotaCredito = "03" // Nota de crédito
)

// =============================================================================
// Formas de pago: código externo del esquema + etiqueta para impresión.
// Métodos no catalogados caen en el código por defecto "99" (OTRO); la tabla
// puede quedarse atrás de los métodos internos sin romper la exportación.
// =============================================================================

// FormaPago par código/etiqueta del esquema externo.
type FormaPago struct {
	Codigo      string
	Descripcion string
}

// FormaPagoPorDefecto para métodos de pago no catalogados.
var FormaPagoPorDefecto = FormaPago{Codigo: "99", Descripcion: "OTRO"}

var formasPago = map[fiscal.MetodoPago]FormaPago{
	fiscal.MetodoEfectivoBs:     {Codigo: "01", Descripcion: "EFECTIVO BS"},
	fiscal.MetodoEfectivoDivisa: {Codigo: "02", Descripcion: "EFECTIVO DIVISA"},
	fiscal.MetodoTransferencia:  {Codigo: "03", Descripcion: "TRANSFERENCIA"},
	fiscal.MetodoPagoMovil:      {Codigo: "04", Descripcion: "PAGO MOVIL"},
	fiscal.MetodoTarjeta:        {Codigo: "05", Descripcion: "TARJETA"},
	fiscal.MetodoZelle:          {Codigo: "06", Descripcion: "ZELLE/APP DIVISA"},
	fiscal.MetodoMixto:          {Codigo: "07", Descripcion: "MIXTO"},
}

// FormaPagoDe mapea el método interno al código externo. El booleano indica
// si el método estaba catalogado; si no, se devuelve FormaPagoPorDefecto.
func FormaPagoDe(metodo fiscal.MetodoPago) (FormaPago, bool) {
	if fp, ok := formasPago[metodo]; ok {
		return fp, true
	}
	return FormaPagoPorDefecto, false
}

// =============================================================================
// Código de subtotal para el IGTF en la lista de impuestos del documento.
// =============================================================================

const CodigoSubtotalIGTF = "IGTF"

// =============================================================================
// Unidades de medida de uso común en líneas de factura.
// =============================================================================

const (
	UnidadUnidad    = "UND"
	UnidadKilogramo = "KG"
	UnidadLitro     = "LT"
	UnidadMetro     = "MT"
	UnidadHora      = "HR"
	UnidadServicio  = "SERV"
)

// ValidUnidades unidades de medida aceptadas en el catálogo de ítems.
var ValidUnidades = map[string]bool{
	UnidadUnidad: true, UnidadKilogramo: true, UnidadLitro: true,
	UnidadMetro: true, UnidadHora: true, UnidadServicio: true,
}
