package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	RIF     string `json:"rif" validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (campos opcionales).
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	RIF       string `json:"rif"`
	Address   string `json:"address"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateInvoiceRequest body para POST /api/invoices. Crea un borrador:
// los totales se calculan y congelan, pero no se asigna numeración.
type CreateInvoiceRequest struct {
	CustomerID string                  `json:"customer_id" validate:"required,uuid"`
	Lines      []InvoiceLineRequest    `json:"lines" validate:"required,min=1"`
	Payments   []InvoicePaymentRequest `json:"payments" validate:"required,min=1"`
}

// InvoiceLineRequest línea del borrador. PrecioUnitario opcional: si va en
// cero se usa el precio de catálogo del ítem.
type InvoiceLineRequest struct {
	ItemID         string          `json:"item_id" validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario,omitempty"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct,omitempty"` // 0..100
}

// InvoicePaymentRequest entrada de pago del documento.
type InvoicePaymentRequest struct {
	Metodo      string          `json:"metodo" validate:"required"`
	Monto       decimal.Decimal `json:"monto"`
	MontoDivisa decimal.Decimal `json:"monto_divisa,omitempty"`
}

// CreateNotaRequest body para POST /api/invoices/:id/notas. Crea una nota de
// crédito o débito referenciando el documento emitido :id.
type CreateNotaRequest struct {
	Tipo     string                  `json:"tipo" validate:"required,oneof=NOTA_CREDITO NOTA_DEBITO"`
	Motivo   string                  `json:"motivo" validate:"required,min=1,max=300"`
	Lines    []InvoiceLineRequest    `json:"lines" validate:"required,min=1"`
	Payments []InvoicePaymentRequest `json:"payments" validate:"required,min=1"`
}

// VoidInvoiceRequest body para POST /api/invoices/:id/anular.
type VoidInvoiceRequest struct {
	Motivo string `json:"motivo" validate:"required,min=1,max=300"`
}

// InvoiceResponse documento con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                   `json:"id"`
	CompanyID     string                   `json:"company_id"`
	CustomerID    string                   `json:"customer_id"`
	CustomerName  string                   `json:"customer_name,omitempty"`
	Tipo          string                   `json:"tipo"`
	Estado        string                   `json:"estado"`
	Numero        string                   `json:"numero,omitempty"`         // vacío en borrador
	NumeroControl string                   `json:"numero_control,omitempty"` // vacío en borrador
	Moneda        string                   `json:"moneda"`
	Fecha         string                   `json:"fecha"`
	FechaEmision  string                   `json:"fecha_emision,omitempty"`
	Subtotal      decimal.Decimal          `json:"subtotal"`
	TotalIVA      decimal.Decimal          `json:"total_iva"`
	TotalIGTF     decimal.Decimal          `json:"total_igtf"`
	Total         decimal.Decimal          `json:"total"`
	TasaCambio    decimal.Decimal          `json:"tasa_cambio"`
	TotalUSD      decimal.Decimal          `json:"total_usd"`
	AfectaNumero  string                   `json:"afecta_numero,omitempty"`
	MotivoNota    string                   `json:"motivo_nota,omitempty"`
	Lines         []InvoiceLineResponse    `json:"lines"`
	Payments      []InvoicePaymentResponse `json:"payments"`
}

// InvoiceLineResponse línea de detalle en la respuesta.
type InvoiceLineResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Codigo         string          `json:"codigo"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
	CodigoIVA      string          `json:"codigo_iva"`
	Alicuota       decimal.Decimal `json:"alicuota"`
	BaseImponible  decimal.Decimal `json:"base_imponible"`
	MontoIVA       decimal.Decimal `json:"monto_iva"`
}

// InvoicePaymentResponse entrada de pago en la respuesta.
type InvoicePaymentResponse struct {
	ID         string          `json:"id"`
	Metodo     string          `json:"metodo"`
	Monto      decimal.Decimal `json:"monto"`
	AplicaIGTF bool            `json:"aplica_igtf"`
	MontoIGTF  decimal.Decimal `json:"monto_igtf"`
}

// InvoiceListItem entrada ligera para listados.
type InvoiceListItem struct {
	ID         string          `json:"id"`
	Tipo       string          `json:"tipo"`
	Estado     string          `json:"estado"`
	Numero     string          `json:"numero,omitempty"`
	Fecha      string          `json:"fecha"`
	CustomerID string          `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
}

// InvoiceListResponse lista paginada de documentos.
type InvoiceListResponse struct {
	Items []InvoiceListItem `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ControlBatchRequest body para POST /api/control-numbers: registra un lote
// de números de control autorizado por la imprenta digital.
type ControlBatchRequest struct {
	Serie string `json:"serie" validate:"required"`
	Desde int64  `json:"desde" validate:"required,min=1"`
	Hasta int64  `json:"hasta" validate:"required,min=1"`
}

// ControlBatchResponse lote en respuestas.
type ControlBatchResponse struct {
	ID        string `json:"id"`
	Serie     string `json:"serie"`
	Desde     int64  `json:"desde"`
	Hasta     int64  `json:"hasta"`
	Siguiente int64  `json:"siguiente"`
	Activo    bool   `json:"activo"`
}
