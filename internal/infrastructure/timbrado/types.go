// Package timbrado implementa la generación del documento electrónico fiscal
// venezolano y su entrega al proveedor de imprenta digital (timbrado).
//
// El esquema DocumentoElectronico es un contrato de integración con un tercero:
// los nombres de campo, el anidamiento y la convención null-vs-omitido deben
// reproducirse campo a campo. Montos siempre como string con 2 decimales y
// punto decimal; fechas DD/MM/AAAA.
package timbrado

// Documento es la raíz del documento electrónico que consume el proveedor.
type Documento struct {
	Encabezado        Encabezado        `json:"encabezado"`
	DetallesItems     []DetalleItem     `json:"detallesItems"`
	Totales           Totales           `json:"totales"`
	DocumentoAfectado DocumentoAfectado `json:"documentoAfectado"`
	InfoAdicional     []CampoAdicional  `json:"infoAdicional,omitempty"`
}

// Encabezado bloque de identificación, emisor y comprador.
type Encabezado struct {
	IdentificacionDocumento IdentificacionDocumento `json:"identificacionDocumento"`
	Emisor                  Parte                   `json:"emisor"`
	Comprador               Parte                   `json:"comprador"`
}

// IdentificacionDocumento identifica el documento fiscal.
type IdentificacionDocumento struct {
	TipoDocumento string `json:"tipoDocumento"` // 01 factura, 02 nota débito, 03 nota crédito
	NumeroFactura string `json:"numeroFactura"`
	NumeroControl string `json:"numeroControl"`
	FechaEmision  string `json:"fechaEmision"` // DD/MM/AAAA
	HoraEmision   string `json:"horaEmision"`  // HH:MM:SS
	Moneda        string `json:"moneda"`       // VES
	TasaCambio    string `json:"tasaCambio"`   // Bs/divisa con 2 decimales
	FechaTasa     string `json:"fechaTasa"`    // DD/MM/AAAA
	Anulado       bool   `json:"anulado"`
}

// Parte datos de identificación de emisor o comprador.
type Parte struct {
	NumeroIdentificacion string `json:"numeroIdentificacion"` // RIF o cédula
	RazonSocial          string `json:"razonSocial"`
	Direccion            string `json:"direccion"`
	Telefono             string `json:"telefono,omitempty"`
	Correo               string `json:"correo,omitempty"`
}

// DetalleItem línea del documento.
type DetalleItem struct {
	NumeroLinea      string `json:"numeroLinea"`
	CodigoPLU        string `json:"codigoPLU"`
	Descripcion      string `json:"descripcion"`
	Cantidad         string `json:"cantidad"`
	PrecioUnitario   string `json:"precioUnitario"`
	DescuentoMonto   string `json:"descuentoMonto"`
	ValorTotalItem   string `json:"valorTotalItem"` // base imponible de la línea
	CodigoImpuesto   string `json:"codigoImpuesto"` // G, R, A, E, NS
	TasaIVA          string `json:"tasaIVA"`
	ValorIVA         string `json:"valorIVA"`
	MontoTotalConIVA string `json:"montoTotalConIVA"`
}

// Totales bloque de totales, subtotales por código de impuesto y formas de pago.
type Totales struct {
	NroItems          string             `json:"nroItems"`
	MontoGravadoTotal string             `json:"montoGravadoTotal"`
	MontoExentoTotal  string             `json:"montoExentoTotal"`
	Subtotal          string             `json:"subtotal"`
	TotalIVA          string             `json:"totalIVA"`
	MontoTotalConIVA  string             `json:"montoTotalConIVA"`
	TotalIGTF         string             `json:"totalIGTF"`
	TotalAPagar       string             `json:"totalAPagar"`
	MontoEnLetras     string             `json:"montoEnLetras"`
	ImpuestosSubtotal []ImpuestoSubtotal `json:"impuestosSubtotal"`
	FormasPago        []FormaPagoDoc     `json:"formasPago"`
}

// ImpuestoSubtotal acumulado por código de impuesto. Los cinco códigos IVA se
// emiten siempre en orden fijo; el IGTF se agrega como entrada extra cuando es
// distinto de cero.
type ImpuestoSubtotal struct {
	CodigoTotal        string `json:"codigoTotal"` // G, R, A, E, NS, IGTF
	AlicuotaImpuesto   string `json:"alicuotaImpuesto"`
	BaseImponible      string `json:"baseImponible"`
	ValorTotalImpuesto string `json:"valorTotalImpuesto"`
}

// FormaPagoDoc entrada de pago del documento.
type FormaPagoDoc struct {
	Forma       string `json:"forma"` // código externo del catálogo
	Descripcion string `json:"descripcion"`
	Monto       string `json:"monto"`
	Moneda      string `json:"moneda"`
}

// DocumentoAfectado referencia al documento original que una nota de crédito o
// débito modifica. Para facturas los cinco campos viajan como null; para notas
// los cinco son obligatorios y no nulos. Un llenado parcial es un defecto: el
// builder llena todos o rechaza el documento.
type DocumentoAfectado struct {
	Serie           *string `json:"serie"`
	NumeroDocumento *string `json:"numeroDocumento"`
	FechaDocumento  *string `json:"fechaDocumento"` // DD/MM/AAAA
	MontoDocumento  *string `json:"montoDocumento"`
	Comentario      *string `json:"comentario"` // motivo de la nota
}

// CampoAdicional par campo/valor de texto libre del documento.
type CampoAdicional struct {
	Campo string `json:"campo"`
	Valor string `json:"valor"`
}
